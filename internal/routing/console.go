package routing

import (
	"fieldmon/internal/record"
	"fieldmon/internal/severity"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Console destination. Writes one line per record.
type ConsoleSink struct {
	name      string
	level     severity.Level
	out       io.Writer
	basicMode bool // message-only lines for machine consumption
}

// Creates a console sink. Script mode against a non-terminal output drops
// the timestamp/origin/severity prefix so lines stay pipeline-friendly.
func NewConsoleSink(name string, level severity.Level, out io.Writer, scriptMode bool) (sink *ConsoleSink) {
	isTerminal := false
	if file, ok := out.(*os.File); ok {
		isTerminal = term.IsTerminal(int(file.Fd()))
	}

	sink = &ConsoleSink{
		name:      name,
		level:     level,
		out:       out,
		basicMode: scriptMode && !isTerminal,
	}
	return
}

func (sink *ConsoleSink) Name() (name string) {
	name = sink.name
	return
}

func (sink *ConsoleSink) Level() (level severity.Level) {
	level = sink.level
	return
}

func (sink *ConsoleSink) Emit(rec record.Record) (err error) {
	line := rec.Format()
	if sink.basicMode {
		line = rec.Message
	}

	_, err = fmt.Fprintf(sink.out, "%s\n", line)
	return
}

// Console has nothing buffered to flush
func (sink *ConsoleSink) Close() (err error) {
	return
}

package listener

import (
	"fieldmon/internal/global"
	"fieldmon/internal/record"
	"fieldmon/internal/routing"
	"fieldmon/internal/severity"
	"fmt"
	"io"
)

// The listener's own diagnostic channel. Reports route through the real
// destinations like any record; if dispatch itself fails the line goes to
// the fallback writer so a broken sink can never mute the listener.
type reporter struct {
	registry *routing.Registry
	out      io.Writer
	origin   string
}

func newReporter(registry *routing.Registry, out io.Writer) (rep *reporter) {
	rep = &reporter{
		registry: registry,
		out:      out,
		origin:   global.NSAgent + "." + global.NSListener,
	}
	return
}

func (rep *reporter) report(level severity.Level, message string, vars ...any) {
	if len(vars) > 0 {
		message = fmt.Sprintf(message, vars...)
	}

	rec := record.New(rep.origin, level, message, nil)
	err := rep.registry.Dispatch(rec)
	if err != nil {
		fmt.Fprintf(rep.out, "%s\n", rec.Format())
	}
}

// Severity levels and the verbosity-to-threshold mapping used across the agent
package severity

import (
	"fmt"
	"strings"
)

// Numeric severity threshold. Higher is more severe.
type Level int

const (
	// Descriptive names for available severity levels
	Trace    Level = 2
	Debug    Level = 10
	Info     Level = 20
	Warning  Level = 30
	Error    Level = 40
	Critical Level = 50

	// Disabled sits above every standard level so nothing can clear it
	Disabled Level = 99
)

// Stringify level name
func (level Level) String() (name string) {
	switch level {
	case Trace:
		name = "TRACE"
	case Debug:
		name = "DEBUG"
	case Info:
		name = "INFO"
	case Warning:
		name = "WARNING"
	case Error:
		name = "ERROR"
	case Critical:
		name = "CRITICAL"
	case Disabled:
		name = "DISABLED"
	default:
		name = fmt.Sprintf("LEVEL(%d)", int(level))
	}
	return
}

// Parses a level name into its numeric threshold. Case insensitive.
func Parse(name string) (level Level, err error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		level = Trace
	case "DEBUG":
		level = Debug
	case "INFO":
		level = Info
	case "WARNING", "WARN":
		level = Warning
	case "ERROR":
		level = Error
	case "CRITICAL":
		level = Critical
	case "DISABLED":
		level = Disabled
	default:
		err = fmt.Errorf("unknown severity level '%s'", name)
	}
	return
}

package routing

import (
	"fieldmon/internal/global"
	"fieldmon/internal/severity"
	"io"
)

// Scoped console-only logging for one-shot commands that never start the
// queue or listener. Configures, runs inner, tears down; no state outlives
// the call.
func WithBasicLogging(verbose int, quiet int, scriptMode bool, consoleOut io.Writer, inner func(reg *Registry) error) (err error) {
	level := severity.FromVerbosity(verbose - quiet)

	cfg := Config{
		Handlers: map[string]Handler{
			global.HandlerConsole: {Kind: KindConsole, Level: level},
		},
		Root: Root{
			Level:          level,
			ActiveHandlers: []string{global.HandlerConsole},
		},
	}

	reg, err := NewRegistry(cfg, consoleOut, scriptMode)
	if err != nil {
		return
	}
	defer func() {
		tearErr := reg.Teardown()
		if err == nil {
			err = tearErr
		}
	}()

	err = inner(reg)
	return
}

package routing

import (
	"errors"
	"fieldmon/internal/global"
	"fieldmon/internal/severity"
)

var (
	// Fatal configuration failure, surfaced before any record flows
	ErrConfig = errors.New("invalid routing configuration")
)

// Destination kind for a handler
type Kind string

const (
	KindConsole Kind = "console"
	KindFile    Kind = "file"
)

// Declarative description of one destination
type Handler struct {
	Kind             Kind
	Level            severity.Level
	FilenameTemplate string // file handlers only, pre-render
	Filename         string // resolved absolute path, set by Render
	MaxFileBytes     int64  // rotation threshold, 0 uses the default
}

// First-pass filter and the ordered set of destinations in use
type Root struct {
	Level          severity.Level
	ActiveHandlers []string
}

// Full routing configuration. Mutated only by Render, read-only afterwards.
type Config struct {
	Handlers map[string]Handler
	Root     Root
}

// Deep copy so callers never observe mutation of their template
func (cfg Config) Clone() (copied Config) {
	copied = Config{
		Handlers: make(map[string]Handler, len(cfg.Handlers)),
		Root: Root{
			Level:          cfg.Root.Level,
			ActiveHandlers: append([]string(nil), cfg.Root.ActiveHandlers...),
		},
	}
	for name, handler := range cfg.Handlers {
		copied.Handlers[name] = handler
	}
	return
}

// Baseline configuration: console at info, file at debug, warnings and
// above pass the root gate until overrides lower it
func DefaultConfig() (cfg Config) {
	cfg = Config{
		Handlers: map[string]Handler{
			global.HandlerConsole: {
				Kind:  KindConsole,
				Level: severity.Info,
			},
			global.HandlerFile: {
				Kind:             KindFile,
				Level:            severity.Debug,
				FilenameTemplate: "fieldmon_{run_id}.log",
			},
		},
		Root: Root{
			Level:          severity.Warning,
			ActiveHandlers: []string{global.HandlerConsole},
		},
	}
	return
}

// Registry mapping record origins to their concrete destination sinks
package routing

import (
	"errors"
	"fieldmon/internal/record"
	"fieldmon/internal/severity"
	"fmt"
	"io"
)

// A destination accepting formatted records
type Sink interface {
	Name() string
	Level() severity.Level
	Emit(rec record.Record) (err error)
	Close() (err error)
}

// Explicit service object over the active sink set. Built once from a
// rendered configuration, read by the listener, torn down exactly once.
type Registry struct {
	rootLevel severity.Level
	sinks     []Sink            // ordered per the active handler set
	origins   map[string][]Sink // per-origin resolution cache
	tornDown  bool
}

// Builds sinks for every active handler in the rendered configuration.
// Console sinks write to consoleOut (normally stdout). Fails on unresolved
// file handlers or unknown handler names.
func NewRegistry(rendered Config, consoleOut io.Writer, scriptMode bool) (reg *Registry, err error) {
	reg = &Registry{
		rootLevel: rendered.Root.Level,
		origins:   make(map[string][]Sink),
	}

	for _, name := range rendered.Root.ActiveHandlers {
		handler, ok := rendered.Handlers[name]
		if !ok {
			reg.Teardown()
			reg = nil
			err = fmt.Errorf("%w: active handler '%s' is not defined", ErrConfig, name)
			return
		}

		var sink Sink
		switch handler.Kind {
		case KindConsole:
			sink = NewConsoleSink(name, handler.Level, consoleOut, scriptMode)
		case KindFile:
			sink, err = NewFileSink(name, handler)
			if err != nil {
				reg.Teardown()
				reg = nil
				return
			}
		default:
			reg.Teardown()
			reg = nil
			err = fmt.Errorf("%w: handler '%s' has unknown kind '%s'", ErrConfig, name, handler.Kind)
			return
		}

		reg.sinks = append(reg.sinks, sink)
	}
	return
}

// Root aggregate threshold all records must clear first
func (reg *Registry) RootLevel() (level severity.Level) {
	level = reg.rootLevel
	return
}

// Resolves the sink set for a record origin. Every origin currently maps to
// the full active set; the cache keeps resolution stable per name.
func (reg *Registry) Lookup(origin string) (sinks []Sink) {
	sinks, ok := reg.origins[origin]
	if ok {
		return
	}
	sinks = reg.sinks
	reg.origins[origin] = sinks
	return
}

// Routes one record through the root gate and every destination whose
// threshold it clears. Malformed records and sink write failures surface
// as an error for the caller to report; delivery to remaining sinks is
// still attempted.
func (reg *Registry) Dispatch(rec record.Record) (err error) {
	if rec.Origin == "" || rec.Level == 0 {
		err = fmt.Errorf("malformed record (origin '%s', level %d): %s", rec.Origin, rec.Level, rec.Message)
		return
	}

	if rec.Level < reg.rootLevel {
		return
	}

	var failures []error
	for _, sink := range reg.Lookup(rec.Origin) {
		if rec.Level < sink.Level() {
			continue
		}
		emitErr := sink.Emit(rec)
		if emitErr != nil {
			failures = append(failures, fmt.Errorf("sink '%s': %v", sink.Name(), emitErr))
		}
	}
	err = errors.Join(failures...)
	return
}

// Flushes and closes every sink. Idempotent.
func (reg *Registry) Teardown() (err error) {
	if reg.tornDown {
		return
	}
	reg.tornDown = true

	var failures []error
	for _, sink := range reg.sinks {
		closeErr := sink.Close()
		if closeErr != nil {
			failures = append(failures, fmt.Errorf("closing sink '%s': %v", sink.Name(), closeErr))
		}
	}
	err = errors.Join(failures...)
	return
}

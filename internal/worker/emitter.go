// Worker-local record emission, redirected into the shared queue
package worker

import (
	"context"
	"fieldmon/internal/global"
	"fieldmon/internal/record"
	"fieldmon/internal/severity"
	"fmt"
	"io"
	"os"
	"strings"
)

// Emitter Structure.
// Filters below-threshold records locally, hands the rest to its submit
// target (the shared queue, or a registry directly in basic mode).
type Emitter struct {
	origin   string
	minLevel severity.Level
	submit   func(rec record.Record) error
	fallback io.Writer // last-resort output when submission fails
}

// Builds a record and submits it if it clears the worker-local threshold.
// vars might be empty - formatting is skipped for plain messages.
func (emitter *Emitter) Emit(level severity.Level, message string, vars ...any) {
	emitter.EmitDetail(level, nil, message, vars...)
}

// Emit with optional structured detail attached
func (emitter *Emitter) EmitDetail(level severity.Level, detail map[string]any, message string, vars ...any) {
	if emitter == nil {
		return
	}
	if level < emitter.minLevel {
		// Dropped before crossing the queue boundary
		return
	}

	var newMsg string
	if len(vars) == 0 || !strings.Contains(message, "%") {
		// Avoiding 'extra' print to log entries
		newMsg = message
	} else {
		newMsg = fmt.Sprintf(message, vars...)
	}

	rec := record.New(emitter.origin, level, newMsg, detail)
	err := emitter.submit(rec)
	if err != nil {
		// Never silently lose a record: report it on the fallback channel
		fmt.Fprintf(emitter.fallback, "[%s] failed to submit record (%v): %s\n", emitter.origin, err, rec.Format())
	}
}

// Child emitter with a component appended to the origin name.
// Shares the parent's threshold and submit target.
func (emitter *Emitter) Named(component string) (child *Emitter) {
	child = &Emitter{
		origin:   emitter.origin + "." + component,
		minLevel: emitter.minLevel,
		submit:   emitter.submit,
		fallback: emitter.fallback,
	}
	return
}

func (emitter *Emitter) Origin() (origin string) {
	origin = emitter.origin
	return
}

// Attach the emitter to context
func WithEmitter(ctx context.Context, emitter *Emitter) (ctxEmitter context.Context) {
	ctxEmitter = context.WithValue(ctx, global.EmitterKey, emitter)
	return
}

// Extracts Emitter from context or returns nil
func FromContext(ctx context.Context) (emitter *Emitter) {
	emitter, ok := ctx.Value(global.EmitterKey).(*Emitter)
	if ok {
		return
	}
	emitter = nil
	return
}

// Entry for logging through whatever emitter the context carries
func Emit(ctx context.Context, level severity.Level, message string, vars ...any) {
	emitter := FromContext(ctx)
	if emitter != nil {
		emitter.Emit(level, message, vars...)
	}
}

var defaultFallback io.Writer = os.Stderr

package worker

import (
	"fieldmon/internal/queue"
	"fieldmon/internal/record"
	"fieldmon/internal/severity"
	"sync"
)

// One attachment per origin per process. Repeat attachment with identical
// arguments returns the existing emitter so no record is delivered twice.
type attachment struct {
	emitter *Emitter
	source  *queue.Queue[record.Record]
}

var (
	attachMutex sync.Mutex
	attachments = make(map[string]attachment)
)

// Redirects a worker's record emission into the shared queue. Must be called
// before the worker emits anything. Records below minLevel are dropped on
// the worker side, before crossing the queue boundary. Idempotent for
// identical arguments; a changed queue or threshold replaces the attachment.
func Attach(origin string, sharedQueue *queue.Queue[record.Record], minLevel severity.Level) (emitter *Emitter) {
	attachMutex.Lock()
	defer attachMutex.Unlock()

	existing, ok := attachments[origin]
	if ok && existing.source == sharedQueue && existing.emitter.minLevel == minLevel {
		emitter = existing.emitter
		return
	}

	emitter = &Emitter{
		origin:   origin,
		minLevel: minLevel,
		submit:   sharedQueue.Push,
		fallback: defaultFallback,
	}
	attachments[origin] = attachment{emitter: emitter, source: sharedQueue}
	return
}

// Direct attachment bypassing the queue, for one-shot commands that run
// without a listener. Not registered; scoped to the caller.
func AttachDirect(origin string, dispatch func(rec record.Record) error, minLevel severity.Level) (emitter *Emitter) {
	emitter = &Emitter{
		origin:   origin,
		minLevel: minLevel,
		submit:   dispatch,
		fallback: defaultFallback,
	}
	return
}

// Drops every queue attachment. Test hook for process-lifetime state.
func ResetAttachments() {
	attachMutex.Lock()
	defer attachMutex.Unlock()
	attachments = make(map[string]attachment)
}

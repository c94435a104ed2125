// The queue-draining listener: sole consumer of the shared record queue,
// dispatcher to the routed destinations, and executor of the shutdown
// protocol signaled by the sentinel
package listener

import (
	"context"
	"fieldmon/internal/atomics"
	"fieldmon/internal/global"
	"fieldmon/internal/queue"
	"fieldmon/internal/record"
	"fieldmon/internal/routing"
	"fieldmon/internal/severity"
	"os"
	"runtime/debug"
)

// Creates a new listener over an open queue and a built registry.
// The registry must already reflect the rendered routing configuration;
// configuration failures belong to the renderer, before this point.
func New(inbox *queue.Queue[record.Record], registry *routing.Registry,
	stopSignal *atomics.Flag, exitEvent *atomics.Flag) (new *Listener) {
	new = &Listener{
		inbox:      inbox,
		registry:   registry,
		stopSignal: stopSignal,
		exitEvent:  exitEvent,
		Tick:       global.ListenerTick,
		Fallback:   os.Stderr,
		state:      Running,
	}
	return
}

// Blocks until Stopped. Emits a confirmation record on entry, consumes the
// queue until the sentinel or an external stop, drains, closes the queue,
// and tears down the registry. Never panics out; per-record failures are
// reported and skipped. The returned error carries teardown failures only.
func (listener *Listener) Run() (final State, err error) {
	rep := newReporter(listener.registry, listener.Fallback)
	rep.report(severity.Info, "Starting logging system")

	for listener.state == Running {
		listener.runningTick(rep)
	}

	if listener.state == Draining {
		listener.drain(rep)
	}

	// Stopped: completion record goes out while destinations still exist
	listener.exitEvent.Set()
	rep.report(severity.Info, "Logging system shut down")

	err = listener.registry.Teardown()
	if err != nil {
		rep.report(severity.Error, "Error tearing down log destinations: %v", err)
	}

	final = listener.state
	return
}

// One Running-state iteration: bounded-timeout take, then dispatch,
// sentinel transition, or cooperative cancellation check
func (listener *Listener) runningTick(rep *reporter) {
	// Record panics and continue working
	defer func() {
		if fatalError := recover(); fatalError != nil {
			stack := debug.Stack()
			rep.report(severity.Error, "panic in listener loop: %v\n%s", fatalError, stack)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), listener.Tick)
	rec, found := listener.inbox.Pop(ctx)
	cancel()

	if !found {
		// Tick boundary: the cooperative cancellation check point
		if listener.stopSignal.IsSet() || listener.exitEvent.IsSet() {
			listener.state = Stopped
		}
		return
	}

	if rec.IsSentinel() {
		listener.state = Draining
		return
	}

	err := listener.registry.Dispatch(rec)
	if err != nil {
		// A single bad record must never stop the loop
		rep.report(severity.Warning, "Error logging record: %v", err)
		rep.report(severity.Info, "Log record info: %s", rec.Format())
	}
}

// Post-sentinel phase: set the exit event, report stragglers that lost the
// race with the sentinel, close the queue
func (listener *Listener) drain(rep *reporter) {
	defer func() {
		if fatalError := recover(); fatalError != nil {
			rep.report(severity.Error, "Error cleaning up log queue: %v", fatalError)
		}
		// Cleanup failures never block reaching Stopped
		listener.state = Stopped
	}()

	listener.exitEvent.Set()
	rep.report(severity.Info, "Shutting down logging system")

	for {
		rec, found := listener.inbox.TryPop()
		if !found {
			break // queue observed empty
		}
		// Warned, never delivered to normal destinations
		if rec.IsSentinel() {
			rep.report(severity.Warning, "Extra shutdown marker found in log queue")
			continue
		}
		rep.report(severity.Warning, "Record found in log queue past shutdown: %s", rec.Format())
	}

	listener.inbox.Close()
}

// Convenience entrypoint matching the agent wiring: build and run in one
// call, for callers that do not need to adjust the tick
func Run(inbox *queue.Queue[record.Record], registry *routing.Registry,
	stopSignal *atomics.Flag, exitEvent *atomics.Flag) (final State, err error) {
	final, err = New(inbox, registry, stopSignal, exitEvent).Run()
	return
}

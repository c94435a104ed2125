package listener

import (
	"fieldmon/internal/atomics"
	"fieldmon/internal/queue"
	"fieldmon/internal/record"
	"fieldmon/internal/routing"
	"io"
	"time"
)

// Listener states. Transitions only move forward.
type State int

const (
	Running State = iota
	Draining
	Stopped
)

func (state State) String() (name string) {
	switch state {
	case Running:
		name = "Running"
	case Draining:
		name = "Draining"
	case Stopped:
		name = "Stopped"
	default:
		name = "Unknown"
	}
	return
}

// The sole consumer of the shared record queue. Owns all mutable routing
// state from the moment Run starts until teardown.
type Listener struct {
	inbox    *queue.Queue[record.Record]
	registry *routing.Registry

	// External stop signal for non-sentinel shutdown, checked each tick
	stopSignal *atomics.Flag
	// Completion event: set on sentinel observation and again at Stopped,
	// observable by any external waiter
	exitEvent *atomics.Flag

	// Bounded wait per queue take; also the cancellation check period
	Tick time.Duration
	// Last-resort output when the routing registry cannot take a diagnostic
	Fallback io.Writer

	state State
}

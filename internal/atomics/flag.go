// Helper types for atomic cross-goroutine signaling
package atomics

import (
	"sync"
	"time"
)

// One-way boolean event flag. Set once, observed by any number of waiters.
// The zero value is unusable, create with NewFlag.
type Flag struct {
	mutex sync.Mutex
	set   bool
	done  chan struct{}
}

// Creates a new unset flag
func NewFlag() (new *Flag) {
	new = &Flag{
		done: make(chan struct{}),
	}
	return
}

// Sets the flag. Safe to call more than once.
func (flag *Flag) Set() {
	flag.mutex.Lock()
	defer flag.mutex.Unlock()

	if flag.set {
		return
	}
	flag.set = true
	close(flag.done)
}

// Reports whether the flag has been set
func (flag *Flag) IsSet() (set bool) {
	flag.mutex.Lock()
	defer flag.mutex.Unlock()
	set = flag.set
	return
}

// Channel closed once the flag is set, for select-based waiters
func (flag *Flag) Done() (done <-chan struct{}) {
	done = flag.done
	return
}

// Blocks until the flag is set or the timeout elapses
func (flag *Flag) Wait(timeout time.Duration) (set bool) {
	select {
	case <-flag.done:
		set = true
	case <-time.After(timeout):
		set = flag.IsSet()
	}
	return
}

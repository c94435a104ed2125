// Shared record queue between producer workers and the single listener
package queue

import (
	"context"
	"fmt"
)

// Creates a new queue
func New[T any](minCapacity, maxCapacity int) (new *Queue[T], err error) {
	if minCapacity < 1 {
		err = fmt.Errorf("minimum capacity must be at least 1")
		return
	}
	if maxCapacity < minCapacity {
		err = fmt.Errorf("maximum capacity must not be below minimum capacity")
		return
	}

	new = &Queue[T]{
		buf:         make([]T, 0, minCapacity),
		notEmpty:    make(chan struct{}, 1),
		closedCh:    make(chan struct{}),
		minCapacity: minCapacity,
		maxCapacity: maxCapacity,
	}
	return
}

// Appends an element. Never blocks; the buffer grows as needed.
// Fails only once the queue has been closed.
func (container *Queue[T]) Push(value T) (err error) {
	container.Metrics.PushAttempts.Add(1)

	container.mutex.Lock()
	if container.closed {
		container.mutex.Unlock()
		container.Metrics.PushClosed.Add(1)
		err = ErrClosed
		return
	}
	container.buf = append(container.buf, value)
	container.mutex.Unlock()

	container.Metrics.PushSuccess.Add(1)
	container.Metrics.Depth.Add(1)

	// notify blocked consumer, non-blocking
	select {
	case container.notEmpty <- struct{}{}:
	default:
	}
	return
}

// Removes and returns the oldest element, blocking until one is available
// or the context expires. Returns found false on context expiry and on a
// closed empty queue.
func (container *Queue[T]) Pop(ctx context.Context) (value T, found bool) {
	for {
		container.Metrics.PopAttempts.Add(1)

		value, found = container.takeOne()
		if found {
			return
		}

		// queue empty: wait for signal, close, or context cancel
		container.Metrics.PopWaits.Add(1)
		select {
		case <-ctx.Done():
			return
		case <-container.closedCh:
			// Closed mid-wait; one final sweep for stragglers
			value, found = container.takeOne()
			return
		case <-container.notEmpty:
			continue // retry after being signaled
		}
	}
}

// Removes and returns the oldest element without blocking
func (container *Queue[T]) TryPop() (value T, found bool) {
	container.Metrics.PopAttempts.Add(1)
	value, found = container.takeOne()
	return
}

// Takes the front element if present and handles buffer reuse
func (container *Queue[T]) takeOne() (value T, found bool) {
	container.mutex.Lock()
	defer container.mutex.Unlock()

	if container.head >= len(container.buf) {
		return
	}

	value = container.buf[container.head]

	// Release the reference so consumed items can be collected
	var zero T
	container.buf[container.head] = zero
	container.head++

	if container.head == len(container.buf) {
		// Fully drained, rewind in place and reconsider capacity
		container.buf = container.buf[:0]
		container.head = 0
		container.compactLocked()
	}

	container.Metrics.PopSuccess.Add(1)
	container.Metrics.Depth.Add(-1)
	found = true
	return
}

// Current number of queued elements
func (container *Queue[T]) Len() (depth int) {
	container.mutex.Lock()
	defer container.mutex.Unlock()
	depth = len(container.buf) - container.head
	return
}

// Gates producers from further writes. Consumer-only, called once the
// drain pass observes emptiness. Safe to call repeatedly.
func (container *Queue[T]) Close() {
	container.mutex.Lock()
	defer container.mutex.Unlock()

	if container.closed {
		return
	}
	container.closed = true
	close(container.closedCh)
}

// Reports whether the queue has been closed
func (container *Queue[T]) Closed() (closed bool) {
	container.mutex.Lock()
	defer container.mutex.Unlock()
	closed = container.closed
	return
}

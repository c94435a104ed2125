package queue

import (
	"errors"
	"sync"
)

var (
	// Returned on put/take against a queue the listener already closed
	ErrClosed = errors.New("queue is closed")
)

// Unbounded FIFO queue shared by many producers and one consumer.
// Producers never block on Push; the consumer blocks on Pop bounded by its
// context. Closed only by the consumer after draining.
type Queue[T any] struct {
	mutex    sync.Mutex
	buf      []T
	head     int // index of next item to pop within buf
	closed   bool
	notEmpty chan struct{} // capacity 1, wakes the blocked consumer
	closedCh chan struct{}

	minCapacity int // compaction floor
	maxCapacity int // capacity above this always compacts once drained

	Metrics MetricStorage
}

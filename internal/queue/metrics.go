package queue

import "sync/atomic"

type MetricStorage struct {
	Depth atomic.Int64 // Current items in queue

	PushAttempts atomic.Uint64 // every Push call
	PushSuccess  atomic.Uint64 // accepted items
	PushClosed   atomic.Uint64 // rejected, queue already closed

	PopAttempts atomic.Uint64 // every Pop/TryPop call
	PopSuccess  atomic.Uint64 // items handed out
	PopWaits    atomic.Uint64 // times the consumer had to block

	Compactions atomic.Uint64 // buffer capacity releases
}

// Point-in-time copy of all counters
type Snapshot struct {
	Depth        int64
	PushAttempts uint64
	PushSuccess  uint64
	PushClosed   uint64
	PopAttempts  uint64
	PopSuccess   uint64
	PopWaits     uint64
	Compactions  uint64
}

func (container *Queue[T]) SnapshotMetrics() (snap Snapshot) {
	snap = Snapshot{
		Depth:        container.Metrics.Depth.Load(),
		PushAttempts: container.Metrics.PushAttempts.Load(),
		PushSuccess:  container.Metrics.PushSuccess.Load(),
		PushClosed:   container.Metrics.PushClosed.Load(),
		PopAttempts:  container.Metrics.PopAttempts.Load(),
		PopSuccess:   container.Metrics.PopSuccess.Load(),
		PopWaits:     container.Metrics.PopWaits.Load(),
		Compactions:  container.Metrics.Compactions.Load(),
	}
	return
}

package queue

import (
	"github.com/pbnjay/memory"
)

// Below this much free system memory, any drained queue gives its spare
// capacity back rather than holding it for the next burst
const lowMemoryWatermark uint64 = 128 * 1024 * 1024

// Reconsiders buffer capacity after a full drain. Keeps burst capacity when
// memory is plentiful, releases it when oversized or the system is tight.
// Caller must hold the mutex.
func (container *Queue[T]) compactLocked() {
	capacity := cap(container.buf)
	if capacity <= container.minCapacity {
		return
	}

	// Within bounds and memory to spare, keep the grown buffer
	if capacity <= container.maxCapacity && memory.FreeMemory() > lowMemoryWatermark {
		return
	}

	container.buf = make([]T, 0, container.minCapacity)
	container.Metrics.Compactions.Add(1)
}

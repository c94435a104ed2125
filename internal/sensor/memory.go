// Built-in sensor workers polled by the agent
package sensor

import (
	"context"
	"fieldmon/internal/calc"
	"fieldmon/internal/severity"
	"fieldmon/internal/worker"
	"time"

	"github.com/pbnjay/memory"
)

// Free-memory fraction under which readings escalate to warnings
const lowMemoryFraction float64 = 0.10

// Recent readings kept for spike smoothing, and how much gets trimmed
// from each end before averaging
const (
	smoothingWindow int     = 5
	smoothingTrim   float64 = 0.2
)

// System memory sensor. Polls total/free memory on a fixed interval and
// emits readings through its attached emitter.
type MemorySensor struct {
	Name     string
	Interval time.Duration

	emitter *worker.Emitter
	readFn  func() (total uint64, free uint64) // swappable for tests

	recentFree []uint64 // sliding window for spike smoothing
}

// Creates a new memory sensor emitting through the given worker emitter
func NewMemory(name string, interval time.Duration, emitter *worker.Emitter) (new *MemorySensor) {
	new = &MemorySensor{
		Name:     name,
		Interval: interval,
		emitter:  emitter,
		readFn: func() (total uint64, free uint64) {
			total = memory.TotalMemory()
			free = memory.FreeMemory()
			return
		},
	}
	return
}

// Polls until the context is cancelled. One reading per interval.
func (sensor *MemorySensor) Run(ctx context.Context) {
	sensor.emitter.Emit(severity.Info, "Sensor started (interval %s)", sensor.Interval)

	ticker := time.NewTicker(sensor.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			sensor.emitter.Emit(severity.Info, "Sensor stopped")
			return
		case <-ticker.C:
			sensor.poll()
		}
	}
}

func (sensor *MemorySensor) poll() {
	total, free := sensor.readFn()

	// Warn on the smoothed value so single-poll dips don't page anyone
	sensor.recentFree = append(sensor.recentFree, free)
	if len(sensor.recentFree) > smoothingWindow {
		sensor.recentFree = sensor.recentFree[1:]
	}
	smoothedFree := calc.TrimmedMean(sensor.recentFree, smoothingTrim)

	detail := map[string]any{
		"total_bytes": total,
		"free_bytes":  free,
	}

	if total > 0 && float64(smoothedFree)/float64(total) < lowMemoryFraction {
		sensor.emitter.EmitDetail(severity.Warning, detail, "System memory low: %d of %d bytes free", free, total)
		return
	}

	sensor.emitter.EmitDetail(severity.Debug, detail, "Memory reading")
}

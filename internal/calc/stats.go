// Basic calculation functions
package calc

import "sort"

// Calculates mean of supplied readings after removing a percentage of
// extreme values from each end (post-sort). Used to smooth sensor
// readings against one-off spikes.
func TrimmedMean(readings []uint64, trimPercent float64) (mean uint64) {
	n := len(readings)
	if n == 0 {
		return
	}
	if trimPercent < 0 {
		trimPercent = 0
	}

	sorted := make([]uint64, n)
	copy(sorted, readings)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	// How many readings to drop from each end
	trimCount := int(float64(n) * trimPercent)
	if trimCount*2 >= n {
		trimCount = (n - 1) / 2
	}

	kept := sorted[trimCount : n-trimCount]

	var sum uint64
	for _, reading := range kept {
		sum += reading
	}

	mean = sum / uint64(len(kept))
	return
}

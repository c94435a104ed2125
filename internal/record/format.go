package record

import (
	"fmt"
	"sort"
	"strings"
)

// Fixed nine-digit fraction so every line has the same timestamp width,
// regardless of sub-second precision or zone offset
const timestampLayout string = "2006-01-02T15:04:05.000000000Z07:00"

// Stringify full record as one output line (no trailing newline)
func (rec Record) Format() (text string) {
	// Only print parts that are present
	var parts []string
	if !rec.Timestamp.IsZero() {
		parts = append(parts, fmt.Sprintf("[%s]", rec.Timestamp.Format(timestampLayout)))
	}

	if rec.Origin != "" {
		parts = append(parts, fmt.Sprintf("[%s]", rec.Origin))
	}

	if rec.Level != 0 {
		parts = append(parts, fmt.Sprintf("[%s]", rec.Level))
	}

	if rec.Message != "" {
		parts = append(parts, rec.Message)
	}

	if len(rec.Detail) > 0 {
		// Stable key order so identical records format identically
		keys := make([]string, 0, len(rec.Detail))
		for key := range rec.Detail {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		attrs := make([]string, 0, len(keys))
		for _, key := range keys {
			attrs = append(attrs, fmt.Sprintf("%s=%v", key, rec.Detail[key]))
		}
		parts = append(parts, "("+strings.Join(attrs, " ")+")")
	}

	text = strings.Join(parts, " ")
	return
}


// Log record value passed from producer workers to the listener
package record

import (
	"fieldmon/internal/severity"
	"time"
)

// Record Structure.
// Immutable once enqueued; created by a producer, consumed exactly once by the listener.
type Record struct {
	Timestamp time.Time
	Origin    string         // Dotted producer name (broad->specific)
	Level     severity.Level
	Message   string
	Detail    map[string]any // Optional structured attributes

	sentinel bool // Only settable inside this package
}

// Creates a new record stamped with the current time
func New(origin string, level severity.Level, message string, detail map[string]any) (new Record) {
	new = Record{
		Timestamp: time.Now(),
		Origin:    origin,
		Level:     level,
		Message:   message,
		Detail:    detail,
	}
	return
}

// The distinguished shutdown value. Distinct from any record a producer can
// build since the marker field is unexported. Exactly one travels the queue
// per shutdown cycle.
func Sentinel() (marker Record) {
	marker = Record{sentinel: true}
	return
}

// Reports whether this value is the shutdown marker
func (rec Record) IsSentinel() (is bool) {
	is = rec.sentinel
	return
}

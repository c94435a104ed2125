package record

import (
	"fieldmon/internal/severity"
	"strings"
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	fixedTime := time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.FixedZone("", -7*3600))

	tests := []struct {
		name     string
		rec      Record
		contains []string
		excludes []string
	}{
		{
			name: "full record",
			rec: Record{
				Timestamp: fixedTime,
				Origin:    "agent.sensor.memory",
				Level:     severity.Info,
				Message:   "poll complete",
			},
			contains: []string{"[agent.sensor.memory]", "[INFO]", "poll complete", "589793238"},
		},
		{
			name:     "no timestamp omits bracket",
			rec:      Record{Origin: "agent", Level: severity.Warning, Message: "late start"},
			contains: []string{"[agent]", "[WARNING]", "late start"},
			excludes: []string{"[]"},
		},
		{
			name: "detail attributes in stable order",
			rec: Record{
				Origin:  "agent.worker",
				Level:   severity.Debug,
				Message: "reading",
				Detail:  map[string]any{"free": 1024, "channel": 2},
			},
			contains: []string{"(channel=2 free=1024)"},
		},
		{
			name:     "message only",
			rec:      Record{Message: "bare"},
			contains: []string{"bare"},
			excludes: []string{"["},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := tt.rec.Format()
			for _, want := range tt.contains {
				if !strings.Contains(text, want) {
					t.Errorf("expected output to contain '%s', got '%s'", want, text)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(text, unwanted) {
					t.Errorf("expected output to not contain '%s', got '%s'", unwanted, text)
				}
			}
		})
	}
}

func TestTimestamp_FixedWidth(t *testing.T) {
	tests := []struct {
		name     string
		stamp    time.Time
		expected string
	}{
		{
			name:     "half second keeps magnitude",
			stamp:    time.Date(2026, 1, 2, 3, 4, 5, 500_000_000, time.FixedZone("", -5*3600)),
			expected: "2026-01-02T03:04:05.500000000-05:00",
		},
		{
			name:     "microseconds trail with zeros",
			stamp:    time.Date(2026, 1, 2, 3, 4, 5, 7000, time.FixedZone("", -5*3600)),
			expected: "2026-01-02T03:04:05.000007000-05:00",
		},
		{
			name:     "utc zone is padded too",
			stamp:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			expected: "2026-01-02T03:04:05.000000000Z",
		},
		{
			name:     "positive offset is padded too",
			stamp:    time.Date(2026, 1, 2, 3, 4, 5, 120, time.FixedZone("", 2*3600)),
			expected: "2026-01-02T03:04:05.000000120+02:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatted := tt.stamp.Format(timestampLayout)
			if formatted != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, formatted)
			}
		})
	}
}

func TestSentinel(t *testing.T) {
	marker := Sentinel()
	if !marker.IsSentinel() {
		t.Fatal("sentinel does not report itself as sentinel")
	}

	normal := New("agent", severity.Info, "hello", nil)
	if normal.IsSentinel() {
		t.Fatal("producer-built record must never be the sentinel")
	}
	if normal.Timestamp.IsZero() {
		t.Fatal("expected new record to carry a timestamp")
	}
}

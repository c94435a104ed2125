package global

import "time"

const (
	ProgVersion string = "v0.3.1"

	// Context keys
	EmitterKey CtxKey = "emitter" // Worker-local record emitter (queue-backed or direct)

	DefaultConfigPath string = "/etc/fieldmon.json"
	DefaultOutputPath string = "/var/log/fieldmon"
	DefaultBinaryPath string = "/usr/local/bin/fieldmon"

	DefaultMinQueueSize int = 512
	DefaultMaxQueueSize int = 65536

	// Bounded wait for one queue take; also the cooperative cancellation
	// check period and therefore the shutdown latency ceiling
	ListenerTick time.Duration = 100 * time.Millisecond

	DefaultSensorInterval time.Duration = 10 * time.Second

	// File sink rotation threshold
	DefaultMaxLogFileBytes int64 = 10 * 1024 * 1024

	// Origin Name Components
	NSAgent    string = "agent"
	NSListener string = "listener"
	NSSensor   string = "sensor"
	NSWorker   string = "worker"
	NSQueue    string = "queue"
	NSTest     string = "test"

	// Handler names recognized by level overrides
	HandlerConsole string = "console"
	HandlerFile    string = "file"
)

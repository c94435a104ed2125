package agent

import (
	"context"
	"fieldmon/internal/atomics"
	"fieldmon/internal/listener"
	"fieldmon/internal/queue"
	"fieldmon/internal/record"
	"fieldmon/internal/routing"
	"fieldmon/internal/sensor"
	"fieldmon/internal/severity"
	"sync"
	"time"
)

type JSONConfig struct {
	Logging struct {
		OutputPath   string `json:"outputPath,omitempty"`
		FileLevel    string `json:"fileLevel,omitempty"`
		ConsoleLevel string `json:"consoleLevel,omitempty"`
		Handlers     map[string]struct {
			Kind             string `json:"kind"`
			Level            string `json:"level"`
			FilenameTemplate string `json:"filenameTemplate,omitempty"`
			MaxFileBytes     int64  `json:"maxFileBytes,omitempty"`
		} `json:"handlers,omitempty"`
		Root struct {
			Level          string   `json:"level,omitempty"`
			ActiveHandlers []string `json:"activeHandlers,omitempty"`
		} `json:"root,omitempty"`
	} `json:"logging"`
	Sensors []struct {
		Kind         string `json:"kind"`
		Name         string `json:"name,omitempty"`
		PollInterval string `json:"pollInterval,omitempty"`
	} `json:"sensors,omitempty"`
	Queue struct {
		MinSize int `json:"minSize,omitempty"`
		MaxSize int `json:"maxSize,omitempty"`
	} `json:"queue,omitempty"`
}

type SensorConfig struct {
	Kind     string
	Name     string
	Interval time.Duration
}

type Config struct {
	// Routing
	Routing      routing.Config
	OutputPath   string
	FileLevel    string // handler level override, empty for none
	ConsoleLevel string

	// Workers
	Sensors     []SensorConfig
	WorkerLevel severity.Level // worker-side filter threshold

	// Queue bounds
	MinQueueSize int
	MaxQueueSize int

	ScriptMode bool
}

type Daemon struct {
	cfg    Config
	ctx    context.Context
	cancel context.CancelFunc

	inbox    *queue.Queue[record.Record]
	registry *routing.Registry

	stopSignal *atomics.Flag
	exitEvent  *atomics.Flag

	sensors  []*sensor.MemorySensor
	sensorWg sync.WaitGroup

	listenerWg    sync.WaitGroup
	listenerState listener.State
	listenerErr   error

	shutdownOnce sync.Once
}

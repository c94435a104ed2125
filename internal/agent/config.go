package agent

import (
	"encoding/json"
	"fieldmon/internal/global"
	"fieldmon/internal/routing"
	"fieldmon/internal/severity"
	"fmt"
	"os"
	"time"
)

// Loads JSON config from file
func LoadConfig(path string) (cfg JSONConfig, err error) {
	configFile, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("failed to read config file: %v", err)
		return
	}

	err = json.Unmarshal(configFile, &cfg)
	if err != nil {
		err = fmt.Errorf("invalid config syntax in '%s': %v", path, err)
		return
	}

	return
}

// Parses JSON config into daemon config
func (cfg JSONConfig) NewDaemonConf() (config Config, err error) {
	// Routing template: start from the built-in defaults, overlay declared handlers
	config.Routing = routing.DefaultConfig()
	for name, handler := range cfg.Logging.Handlers {
		var level severity.Level
		level, err = severity.Parse(handler.Level)
		if err != nil {
			err = fmt.Errorf("handler '%s': %v", name, err)
			return
		}
		config.Routing.Handlers[name] = routing.Handler{
			Kind:             routing.Kind(handler.Kind),
			Level:            level,
			FilenameTemplate: handler.FilenameTemplate,
			MaxFileBytes:     handler.MaxFileBytes,
		}
	}
	if cfg.Logging.Root.Level != "" {
		config.Routing.Root.Level, err = severity.Parse(cfg.Logging.Root.Level)
		if err != nil {
			err = fmt.Errorf("root level: %v", err)
			return
		}
	}
	if len(cfg.Logging.Root.ActiveHandlers) > 0 {
		config.Routing.Root.ActiveHandlers = append([]string(nil), cfg.Logging.Root.ActiveHandlers...)
	}

	config.OutputPath = cfg.Logging.OutputPath
	config.FileLevel = cfg.Logging.FileLevel
	config.ConsoleLevel = cfg.Logging.ConsoleLevel

	// Sensor settings
	for _, sensorConf := range cfg.Sensors {
		interval := global.DefaultSensorInterval
		if sensorConf.PollInterval != "" {
			interval, err = time.ParseDuration(sensorConf.PollInterval)
			if err != nil {
				err = fmt.Errorf("failed to parse sensor poll interval: %v", err)
				return
			}
		}
		name := sensorConf.Name
		if name == "" {
			name = sensorConf.Kind
		}
		config.Sensors = append(config.Sensors, SensorConfig{
			Kind:     sensorConf.Kind,
			Name:     name,
			Interval: interval,
		})
	}

	// Queue settings
	config.MinQueueSize = cfg.Queue.MinSize
	config.MaxQueueSize = cfg.Queue.MaxSize

	return
}

// Sets defaults for any missing/invalid values
func (cfg *Config) setDefaults() {
	if cfg.OutputPath == "" {
		cfg.OutputPath = global.DefaultOutputPath
	}
	if cfg.MinQueueSize == 0 {
		cfg.MinQueueSize = global.DefaultMinQueueSize
	}
	if cfg.MaxQueueSize == 0 {
		cfg.MaxQueueSize = global.DefaultMaxQueueSize
	}
	if cfg.WorkerLevel == 0 {
		cfg.WorkerLevel = severity.Debug
	}
	if len(cfg.Sensors) == 0 {
		// An agent with nothing to poll still heartbeats memory readings
		cfg.Sensors = []SensorConfig{{Kind: "memory", Name: "memory", Interval: global.DefaultSensorInterval}}
	}
}

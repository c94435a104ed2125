package agent

import (
	"fieldmon/internal/global"
	"fieldmon/internal/severity"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		contents    string
		expectError bool
	}{
		{
			name:     "valid full config",
			contents: `{"logging":{"outputPath":"/tmp/logs","fileLevel":"DEBUG"},"sensors":[{"kind":"memory","pollInterval":"5s"}],"queue":{"minSize":64,"maxSize":4096}}`,
		},
		{
			name:     "valid empty object",
			contents: `{}`,
		},
		{
			name:        "invalid syntax",
			contents:    `{"logging":`,
			expectError: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "fieldmon.json")
			err := os.WriteFile(path, []byte(test.contents), 0640)
			if err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			_, err = LoadConfig(path)
			if err != nil && !test.expectError {
				t.Errorf("expected no error, got '%v'", err)
			}
			if err == nil && test.expectError {
				t.Errorf("expected error, got none")
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nonexistent.json"))
	if err == nil {
		t.Errorf("expected error for missing file, got none")
	}
}

func TestNewDaemonConf(t *testing.T) {
	var jsonConf JSONConfig
	jsonConf.Logging.OutputPath = "/tmp/fieldmon-test"
	jsonConf.Logging.FileLevel = "DEBUG"
	jsonConf.Logging.Root.Level = "INFO"
	jsonConf.Logging.Root.ActiveHandlers = []string{"console", "file"}
	jsonConf.Logging.Handlers = map[string]struct {
		Kind             string `json:"kind"`
		Level            string `json:"level"`
		FilenameTemplate string `json:"filenameTemplate,omitempty"`
		MaxFileBytes     int64  `json:"maxFileBytes,omitempty"`
	}{
		"file": {Kind: "file", Level: "WARNING", FilenameTemplate: "agent_{run_id}.log"},
	}
	jsonConf.Sensors = []struct {
		Kind         string `json:"kind"`
		Name         string `json:"name,omitempty"`
		PollInterval string `json:"pollInterval,omitempty"`
	}{
		{Kind: "memory", PollInterval: "3s"},
		{Kind: "memory", Name: "ram2"},
	}
	jsonConf.Queue.MinSize = 128
	jsonConf.Queue.MaxSize = 8192

	config, err := jsonConf.NewDaemonConf()
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}

	if config.OutputPath != "/tmp/fieldmon-test" {
		t.Errorf("expected output path '/tmp/fieldmon-test', got '%s'", config.OutputPath)
	}
	if config.FileLevel != "DEBUG" {
		t.Errorf("expected file level override 'DEBUG', got '%s'", config.FileLevel)
	}
	if config.Routing.Root.Level != severity.Info {
		t.Errorf("expected root level INFO, got '%s'", config.Routing.Root.Level.String())
	}
	if len(config.Routing.Root.ActiveHandlers) != 2 {
		t.Errorf("expected 2 active handlers, got %d", len(config.Routing.Root.ActiveHandlers))
	}

	fileHandler, exists := config.Routing.Handlers["file"]
	if !exists {
		t.Fatalf("expected declared file handler to survive overlay")
	}
	if fileHandler.Level != severity.Warning {
		t.Errorf("expected file handler level WARNING, got '%s'", fileHandler.Level.String())
	}
	if fileHandler.FilenameTemplate != "agent_{run_id}.log" {
		t.Errorf("expected filename template preserved, got '%s'", fileHandler.FilenameTemplate)
	}

	// Defaults for unnamed handlers must still be present
	if _, exists := config.Routing.Handlers["console"]; !exists {
		t.Errorf("expected default console handler to remain")
	}

	if len(config.Sensors) != 2 {
		t.Fatalf("expected 2 sensors, got %d", len(config.Sensors))
	}
	if config.Sensors[0].Interval != 3*time.Second {
		t.Errorf("expected 3s poll interval, got %v", config.Sensors[0].Interval)
	}
	if config.Sensors[0].Name != "memory" {
		t.Errorf("expected sensor name to default to kind, got '%s'", config.Sensors[0].Name)
	}
	if config.Sensors[1].Name != "ram2" {
		t.Errorf("expected explicit sensor name 'ram2', got '%s'", config.Sensors[1].Name)
	}
	if config.Sensors[1].Interval != global.DefaultSensorInterval {
		t.Errorf("expected default poll interval, got %v", config.Sensors[1].Interval)
	}

	if config.MinQueueSize != 128 || config.MaxQueueSize != 8192 {
		t.Errorf("expected queue bounds 128/8192, got %d/%d", config.MinQueueSize, config.MaxQueueSize)
	}
}

func TestNewDaemonConfInvalidValues(t *testing.T) {
	t.Run("bad handler level", func(t *testing.T) {
		var jsonConf JSONConfig
		jsonConf.Logging.Handlers = map[string]struct {
			Kind             string `json:"kind"`
			Level            string `json:"level"`
			FilenameTemplate string `json:"filenameTemplate,omitempty"`
			MaxFileBytes     int64  `json:"maxFileBytes,omitempty"`
		}{
			"console": {Kind: "console", Level: "LOUD"},
		}

		_, err := jsonConf.NewDaemonConf()
		if err == nil {
			t.Errorf("expected error for unknown level name, got none")
		}
	})

	t.Run("bad root level", func(t *testing.T) {
		var jsonConf JSONConfig
		jsonConf.Logging.Root.Level = "SOMETIMES"

		_, err := jsonConf.NewDaemonConf()
		if err == nil {
			t.Errorf("expected error for unknown root level, got none")
		}
	})

	t.Run("bad poll interval", func(t *testing.T) {
		var jsonConf JSONConfig
		jsonConf.Sensors = []struct {
			Kind         string `json:"kind"`
			Name         string `json:"name,omitempty"`
			PollInterval string `json:"pollInterval,omitempty"`
		}{
			{Kind: "memory", PollInterval: "every minute"},
		}

		_, err := jsonConf.NewDaemonConf()
		if err == nil {
			t.Errorf("expected error for unparsable poll interval, got none")
		}
	})
}

func TestSetDefaults(t *testing.T) {
	var config Config
	config.setDefaults()

	if config.OutputPath != global.DefaultOutputPath {
		t.Errorf("expected default output path, got '%s'", config.OutputPath)
	}
	if config.MinQueueSize != global.DefaultMinQueueSize {
		t.Errorf("expected default min queue size, got %d", config.MinQueueSize)
	}
	if config.MaxQueueSize != global.DefaultMaxQueueSize {
		t.Errorf("expected default max queue size, got %d", config.MaxQueueSize)
	}
	if config.WorkerLevel != severity.Debug {
		t.Errorf("expected default worker level DEBUG, got '%s'", config.WorkerLevel.String())
	}
	if len(config.Sensors) != 1 || config.Sensors[0].Kind != "memory" {
		t.Errorf("expected single default memory sensor, got %+v", config.Sensors)
	}

	// Explicit values survive
	explicit := Config{OutputPath: "/srv/logs", MinQueueSize: 10, MaxQueueSize: 20, WorkerLevel: severity.Info}
	explicit.Sensors = []SensorConfig{{Kind: "memory", Name: "ram", Interval: time.Second}}
	explicit.setDefaults()
	if explicit.OutputPath != "/srv/logs" || explicit.MinQueueSize != 10 || explicit.MaxQueueSize != 20 {
		t.Errorf("explicit values were overwritten: %+v", explicit)
	}
	if explicit.WorkerLevel != severity.Info {
		t.Errorf("explicit worker level was overwritten: %s", explicit.WorkerLevel.String())
	}
}

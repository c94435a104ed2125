// Resolves a declarative routing template into a ready-to-apply configuration
package routing

import (
	"fieldmon/internal/global"
	"fieldmon/internal/severity"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type RenderOptions struct {
	OutputPath   string            // base directory anchoring relative log filenames
	FileLevel    string            // level name override for the file handler, empty for none
	ConsoleLevel string            // level name override for the console handler, empty for none
	Tokens       map[string]string // filename template substitutions, e.g. run_id
}

// Produces a fully resolved copy of the template: file paths substituted and
// anchored with parent directories created, level overrides applied, and the
// root threshold recomputed. The template itself is never mutated.
// Runs once at startup; any failure here is fatal before the listener starts.
func Render(template Config, opts RenderOptions) (rendered Config, err error) {
	rendered = template.Clone()

	err = renderHandlerPaths(&rendered, opts)
	if err != nil {
		return
	}

	if opts.FileLevel != "" || opts.ConsoleLevel != "" {
		err = applyLevelOverrides(&rendered, opts)
		if err != nil {
			return
		}
	}

	return
}

// Substitutes tokens into file handler filenames, anchors relative results
// under the output path, and ensures each parent directory exists
func renderHandlerPaths(cfg *Config, opts RenderOptions) (err error) {
	for name, handler := range cfg.Handlers {
		if handler.Kind != KindFile {
			continue
		}
		if handler.FilenameTemplate == "" {
			err = fmt.Errorf("%w: file handler '%s' has no filename template", ErrConfig, name)
			return
		}

		filename := substituteTokens(handler.FilenameTemplate, opts.Tokens)
		if !filepath.IsAbs(filename) && opts.OutputPath != "" {
			filename = filepath.Join(opts.OutputPath, filename)
		}

		err = os.MkdirAll(filepath.Dir(filename), 0750)
		if err != nil {
			err = fmt.Errorf("%w: failed to create log directory for handler '%s': %v", ErrConfig, name, err)
			return
		}

		handler.Filename = filename
		cfg.Handlers[name] = handler
	}
	return
}

// Applies per-destination-kind level overrides and lowers the root gate so
// it is never stricter than a handler that was just lowered
func applyLevelOverrides(cfg *Config, opts RenderOptions) (err error) {
	overrides := []struct {
		handler string
		level   string
	}{
		{global.HandlerFile, opts.FileLevel},
		{global.HandlerConsole, opts.ConsoleLevel},
	}

	rootMin := cfg.Root.Level
	for _, override := range overrides {
		if override.level == "" {
			continue
		}

		var level severity.Level
		level, err = severity.Parse(override.level)
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrConfig, err)
			return
		}

		handler, ok := cfg.Handlers[override.handler]
		if !ok {
			err = fmt.Errorf("%w: level override for unknown handler '%s'", ErrConfig, override.handler)
			return
		}
		handler.Level = level
		cfg.Handlers[override.handler] = handler

		if !containsName(cfg.Root.ActiveHandlers, override.handler) {
			cfg.Root.ActiveHandlers = append(cfg.Root.ActiveHandlers, override.handler)
		}

		if level < rootMin {
			rootMin = level
		}
	}
	cfg.Root.Level = rootMin
	return
}

func substituteTokens(template string, tokens map[string]string) (substituted string) {
	substituted = template
	for token, value := range tokens {
		substituted = strings.ReplaceAll(substituted, "{"+token+"}", value)
	}
	return
}

func containsName(names []string, target string) (found bool) {
	for _, name := range names {
		if name == target {
			found = true
			return
		}
	}
	return
}

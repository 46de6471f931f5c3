// Package config loads server configuration from an optional YAML file.
// A missing file is not an error; every field has a working default so
// the server starts with no configuration at all.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration document.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Journal JournalConfig `yaml:"journal"`
	Log     LogConfig     `yaml:"log"`
}

// EngineConfig controls the connection to the external CAD application.
type EngineConfig struct {
	// ProgID is the automation identifier of the application to attach to
	// or launch.
	ProgID string `yaml:"prog_id"`
	// PartTemplate globs are tried in order when creating a new part
	// document; the first existing match wins.
	PartTemplates []string `yaml:"part_templates"`
	// ConnectTimeout bounds attach-or-launch plus the readiness poll.
	ConnectTimeout string `yaml:"connect_timeout"`
	// DialogTimeout bounds the watcher around dialog-prone calls;
	// DialogPoll is its probe interval.
	DialogTimeout string `yaml:"dialog_timeout"`
	DialogPoll    string `yaml:"dialog_poll"`
}

// JournalConfig controls the command journal.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			ProgID: "SldWorks.Application",
			PartTemplates: []string{
				`C:\ProgramData\SolidWorks\SOLIDWORKS *\templates\Part.prtdot`,
				`C:\ProgramData\SolidWorks\SOLIDWORKS *\templates\Part.PRTDOT`,
			},
			ConnectTimeout: "60s",
			DialogTimeout:  "10s",
			DialogPoll:     "250ms",
		},
		Journal: JournalConfig{Enabled: true, Path: "swmcp.db"},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path or a missing file
// yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// duration parses s, falling back to def on empty or malformed input.
func duration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// ConnectTimeoutDuration returns the parsed connect timeout.
func (e EngineConfig) ConnectTimeoutDuration() time.Duration {
	return duration(e.ConnectTimeout, 60*time.Second)
}

// DialogTimeoutDuration returns the parsed dialog watcher timeout.
func (e EngineConfig) DialogTimeoutDuration() time.Duration {
	return duration(e.DialogTimeout, 10*time.Second)
}

// DialogPollDuration returns the parsed dialog watcher probe interval.
func (e EngineConfig) DialogPollDuration() time.Duration {
	return duration(e.DialogPoll, 250*time.Millisecond)
}

package config

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the display host's configuration. Only LogLevel is applied when
// the file is reloaded; see RestartRequired.
type Config struct {
	// Source is a video file, stream URL or camera index.
	Source string `yaml:"source"`

	Window WindowConfig `yaml:"window"`

	LogLevel string `yaml:"log_level"`

	// If non-empty, Prometheus metrics are served on this address.
	MetricsAddr string `yaml:"metrics_addr"`
}

type WindowConfig struct {
	Name string `yaml:"name"`

	// Milliseconds given to the window's event loop after each frame.
	WaitKeyMillis int `yaml:"wait_key_ms"`

	ResizeToFrame bool `yaml:"resize_to_frame"`
	KeepRatio     bool `yaml:"keep_ratio"`
	Fullscreen    bool `yaml:"fullscreen"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Name:          "FrameDisplay",
			WaitKeyMillis: 1,
			ResizeToFrame: true,
			KeepRatio:     true,
		},
		LogLevel: "info",
	}
}

// Parse reads YAML on top of the defaults.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Window.Name == "" {
		return fmt.Errorf("config: window.name must not be empty")
	}
	if c.Window.WaitKeyMillis < 1 {
		return fmt.Errorf("config: window.wait_key_ms must be at least 1, got %d", c.Window.WaitKeyMillis)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// RestartRequired lists the keys that differ between c and started and that
// only take effect when the process starts.
func (c *Config) RestartRequired(started *Config) []string {
	var keys []string
	add := func(key string, changed bool) {
		if changed {
			keys = append(keys, key)
		}
	}
	add("source", c.Source != started.Source)
	add("metrics_addr", c.MetricsAddr != started.MetricsAddr)
	add("window.name", c.Window.Name != started.Window.Name)
	add("window.wait_key_ms", c.Window.WaitKeyMillis != started.Window.WaitKeyMillis)
	add("window.resize_to_frame", c.Window.ResizeToFrame != started.Window.ResizeToFrame)
	add("window.keep_ratio", c.Window.KeepRatio != started.Window.KeepRatio)
	add("window.fullscreen", c.Window.Fullscreen != started.Window.Fullscreen)
	return keys
}

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	c, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestParseOverrides(t *testing.T) {
	c, err := Parse([]byte(`
source: /videos/gate.mp4
log_level: debug
metrics_addr: ":9090"
window:
  name: Gate
  wait_key_ms: 5
  fullscreen: true
`))
	require.NoError(t, err)
	assert.Equal(t, "/videos/gate.mp4", c.Source)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, ":9090", c.MetricsAddr)
	assert.Equal(t, "Gate", c.Window.Name)
	assert.Equal(t, 5, c.Window.WaitKeyMillis)
	assert.True(t, c.Window.Fullscreen)
	// Untouched keys keep their defaults.
	assert.True(t, c.Window.KeepRatio)
	assert.True(t, c.Window.ResizeToFrame)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "window: ["},
		{"empty window name", "window:\n  name: \"\""},
		{"zero wait", "window:\n  wait_key_ms: 0"},
		{"bad level", "log_level: loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestRestartRequired(t *testing.T) {
	started := Default()
	assert.Empty(t, Default().RestartRequired(started))

	c := Default()
	c.LogLevel = "debug"
	assert.Empty(t, c.RestartRequired(started), "log level is applied live")

	c.Source = "0"
	c.Window.Name = "Other"
	c.Window.Fullscreen = true
	assert.Equal(t, []string{"source", "window.name", "window.fullscreen"}, c.RestartRequired(started))
}

func TestLoadAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "display.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window:\n  name: First\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan *Config, 1)
	require.NoError(t, Load(ctx, path, func(c *Config) {
		select {
		case changed <- c:
		default:
		}
	}))
	assert.Equal(t, "First", Get().Window.Name)

	// Give the watcher time to start before writing.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("window:\n  name: Second\n"), 0644))

	select {
	case c := <-changed:
		assert.Equal(t, "Second", c.Window.Name)
		assert.Equal(t, "Second", Get().Window.Name)
	case <-time.After(5 * time.Second):
		t.Fatal("config change not observed")
	}
}

func TestLoadMissingFile(t *testing.T) {
	err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

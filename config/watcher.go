package config

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

var (
	gLock   sync.RWMutex
	gConfig = Default()
)

func configFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	config, err := Parse(data)
	if err != nil {
		return nil, err
	}
	log.Infof("Loaded configuration: %v", spew.Sdump(config))
	return config, nil
}

// Get returns the current configuration. Callers must not modify it.
func Get() *Config {
	gLock.RLock()
	defer gLock.RUnlock()
	return gConfig
}

func set(c *Config) {
	gLock.Lock()
	defer gLock.Unlock()
	gConfig = c
}

func waitForChange(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-watcher.Errors:
		return err
	case <-watcher.Events:
	}
	// Editors often write in several steps; let them finish.
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Second / 10):
	}
	return ctx.Err()
}

// Load reads the configuration at path and keeps reloading it whenever the
// file changes until ctx is cancelled. onChange, if set, is called with each
// successfully reloaded configuration. Invalid reloads are logged and the
// previous configuration stays in effect. Reloads that touch keys listed by
// RestartRequired log a warning, since the running display keeps its
// startup values for them.
func Load(ctx context.Context, path string, onChange func(*Config)) error {
	config, err := configFromFile(path)
	if err != nil {
		return err
	}
	set(config)
	started := config
	go func() {
		for ctx.Err() == nil {
			if err := waitForChange(ctx, path); err != nil {
				if ctx.Err() == nil {
					log.Errorf("Error waiting for file change: %v", err)
					// Back off; the file may be mid-replace.
					time.Sleep(time.Second)
				}
				continue
			}

			config, err := configFromFile(path)
			if err != nil {
				log.Errorf("Failed to load new config: %v", err)
				continue
			}
			set(config)
			if keys := config.RestartRequired(started); len(keys) > 0 {
				log.Warnf("Configuration changes to %v take effect after a restart", keys)
			}
			if onChange != nil {
				onChange(config)
			}
		}
	}()
	return nil
}

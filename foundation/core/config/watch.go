// File: watch.go
// Title: Configuration File Watching
// Description: Hot reloading of the configuration file through fsnotify.
//              The parent directory is watched so that editors which replace
//              the file by rename are picked up as well.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-04
// Modified: 2025-11-06
//
// Change History:
// - 2025-11-04 v0.1.0: Initial implementation
// - 2025-11-06 v0.1.0: Watch the directory instead of the file

package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	argoterrors "github.com/msto63/argot/foundation/core/errors"
	argotlog "github.com/msto63/argot/foundation/core/log"
)

// Watch starts watching the configuration file and returns once the
// watcher is installed. Reloads happen in the background until ctx is
// done. Handlers registered with OnChange run after each successful reload,
// on the watcher goroutine.
func (c *Config) Watch(ctx context.Context) error {
	if c.filePath == "" {
		return argoterrors.New("file path required for watching").
			WithCode(argoterrors.CodeInvalidInput).
			WithOperation("config.Watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return argoterrors.Wrap(err, "failed to create file watcher").
			WithCode(argoterrors.CodeConfig).
			WithOperation("config.Watch")
	}

	target, err := filepath.Abs(c.filePath)
	if err != nil {
		watcher.Close()
		return argoterrors.Wrap(err, "failed to resolve config path").
			WithCode(argoterrors.CodeConfig).
			WithOperation("config.Watch")
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return argoterrors.Wrap(err, "failed to watch config directory").
			WithCode(argoterrors.CodeConfig).
			WithOperation("config.Watch").
			WithDetail("filePath", c.filePath)
	}

	c.logger.Debug("watching config file", argotlog.Fields{"filePath": target})
	go c.watchLoop(ctx, watcher, target)
	return nil
}

func (c *Config) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, target string) {
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := c.reload(); err != nil {
				c.logger.WarnWithErr("config reload failed, keeping previous values", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			c.logger.WarnWithErr("config watcher error", err)
		}
	}
}

// reload rereads the file and notifies handlers. A file that fails to parse
// leaves the current data untouched.
func (c *Config) reload() error {
	content, err := os.ReadFile(c.filePath)
	if err != nil {
		return argoterrors.Wrap(err, "failed to read config file during reload").
			WithCode(argoterrors.CodeConfig).
			WithOperation("config.reload")
	}
	data, err := parseContent(content, c.format)
	if err != nil {
		return err
	}

	c.mu.Lock()
	old := &Config{data: c.data, format: c.format, envPrefix: c.envPrefix, logger: c.logger}
	c.data = data
	handlers := append([]ChangeHandler(nil), c.handlers...)
	c.mu.Unlock()

	c.logger.Info("config reloaded", argotlog.Fields{"filePath": c.filePath})
	for _, handler := range handlers {
		if handler != nil {
			handler(old, c)
		}
	}
	return nil
}

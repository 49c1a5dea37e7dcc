package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/bjaus/inspect"
)

// watchFile prints path once and again after every write until ctx is done.
// Decode errors are logged and the watch continues.
func watchFile(ctx context.Context, logger *slog.Logger, w io.Writer, path, explicit string, opts inspect.Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	render := func() error {
		v, err := loadFile(path, explicit)
		if err != nil {
			logger.Warn("reload failed", slog.String("path", path), slog.Any("error", err))
			return nil
		}
		return inspect.Write(w, v, inspect.WithOptions(opts))
	}
	if err := render(); err != nil {
		return err
	}

	base := filepath.Base(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := render(); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", slog.Any("error", err))
		}
	}
}

package config

import (
	"context"
	"path/filepath"

	"qstrategy/internal/logger"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config whenever the file changes and hands the
// fresh copy to onChange. A malformed edit is logged and skipped, the
// previous config stays in effect.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory: editors replace the file on save, which
	// would drop a watch on the file itself.
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return err
	}
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != filepath.Clean(path) {
					continue
				}
				if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					logger.Warnf("config reload skipped: %v", err)
					continue
				}
				onChange(cfg)
			case werr, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warnf("config watch error: %v", werr)
			}
		}
	}()
	return nil
}

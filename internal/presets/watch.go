package presets

import (
	"context"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange from a background goroutine whenever a file in the
// user preset directory is created, written, removed or renamed, until ctx
// is done. It is a no-op without a user directory.
func (l *Loader) Watch(ctx context.Context, onChange func(name string)) error {
	if l.dir == "" {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(l.dir); err != nil {
		w.Close()
		return err
	}
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
					onChange(ev.Name)
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return nil
}

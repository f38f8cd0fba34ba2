package watcher

import (
	"context"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// startFsNotify posts matching change events to the wake mailbox. It never
// touches the registry; the scan loop stays the only reader of files.
func (w *Watcher) startFsNotify(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := addTree(fw, w.cfg.Root); err != nil {
		fw.Close()
		return err
	}

	go func() {
		defer fw.Close()
		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-fw.Events:
				if !ok {
					w.log.Error("events channel closed")
					return
				}
				w.handleEvent(fw, ev)

			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				w.log.Debug("fsnotify error", "error", err)
			}
		}
	}()

	return nil
}

func (w *Watcher) handleEvent(fw *fsnotify.Watcher, ev fsnotify.Event) {
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := addTree(fw, ev.Name); err != nil {
				w.log.Debug("cannot watch new directory", "path", ev.Name, "error", err)
			}
			// Files may have landed before the watch was added.
			w.wake.Put(ev.Name)
			return
		}
	}

	if !strings.HasSuffix(filepath.Base(ev.Name), w.cfg.Extension) {
		return
	}
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.log.Debug("event", "name", ev.Name, "op", ev.Op.String())
	w.wake.Put(ev.Name)
}

// addTree watches dir and every directory below it.
func addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := fw.Add(path); err != nil && path == dir {
			return err
		}
		return nil
	})
}

// Package fsprobe checks whether fsnotify works reliably for a directory.
// It appends to a real probe file to ensure write events are delivered.
package fsprobe

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const probeName = ".dirwatcher_probe"

// DefaultTimeout is how long Probe waits for an event.
const DefaultTimeout = 200 * time.Millisecond

// Result reports whether fsnotify is usable and why.
type Result struct {
	FsnotifySupported bool   // true if events are delivered
	Reason            string // explanation when unsupported
}

// Probe tests whether fsnotify reports appends to a file in dir.
// The probe file is not matched by any sane extension filter and is removed
// before returning.
func Probe(dir string, timeout time.Duration) Result {
	st, err := os.Stat(dir)
	if err != nil {
		return Result{false, fmt.Sprintf("stat failed: %v", err)}
	}
	if !st.IsDir() {
		return Result{false, "not a directory"}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return Result{false, fmt.Sprintf("fsnotify unavailable: %v", err)}
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return Result{false, fmt.Sprintf("cannot watch directory: %v", err)}
	}

	path := filepath.Join(dir, probeName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return Result{false, fmt.Sprintf("cannot create probe file: %v", err)}
	}
	defer os.Remove(path)

	_, err = f.WriteString("probe\n")
	f.Close()
	if err != nil {
		return Result{false, fmt.Sprintf("cannot append to probe file: %v", err)}
	}

	deadline := time.After(timeout)
	for {
		select {
		case ev := <-w.Events:
			if ev.Name == path && ev.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				return Result{true, ""}
			}
		case err := <-w.Errors:
			return Result{false, fmt.Sprintf("fsnotify error: %v", err)}
		case <-deadline:
			return Result{false, "no events received (append not reported)"}
		}
	}
}

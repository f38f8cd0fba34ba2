package watcher

import (
	"context"
	"errors"
	"strings"

	"github.com/raoulx24/dirwatcher/internal/fs"
)

// contains the per-iteration logic: list, reconcile, then read appended
// lines of every tracked file.

// Scan runs one iteration of the loop.
func (w *Watcher) Scan(ctx context.Context) {
	w.mu.Lock()
	w.stats.Iterations++
	w.stats.LastScan = w.now()
	iteration := w.stats.Iterations
	w.mu.Unlock()

	w.log.Debug("scanning",
		"root", w.cfg.Root,
		"extension", w.cfg.Extension,
		"iteration", iteration,
	)

	paths, err := fs.ListMatching(w.cfg.Root, w.cfg.Extension)
	if err != nil {
		var le *fs.ListError
		if errors.As(err, &le) && le.Kind == fs.KindNotFound {
			w.log.Warn("watch directory not found", "root", w.cfg.Root, "error", le.Err)
		} else {
			w.log.Warn("cannot list watch directory", "root", w.cfg.Root, "error", err)
		}
		return
	}

	added, removed := w.reg.Reconcile(paths)
	for _, p := range added {
		w.log.Info("file found", "path", p)
	}
	for _, p := range removed {
		delete(w.truncated, p)
		w.log.Info("file removed", "path", p)
	}

	w.mu.Lock()
	w.stats.Found += len(added)
	w.stats.Removed += len(removed)
	w.mu.Unlock()

	for _, p := range paths {
		if ctx.Err() != nil {
			return
		}
		w.scanFile(ctx, p)
	}
}

// scanFile consumes the complete lines appended to path since the last read.
func (w *Watcher) scanFile(ctx context.Context, path string) {
	tf, ok := w.reg.Get(path)
	if !ok {
		return
	}

	line := tf.NextLine
	prog, err := fs.ReadLines(ctx, path, tf.Offset, func(text string, next int64) {
		if strings.Contains(text, w.cfg.MagicText) {
			w.report(Match{Path: path, Line: line, Text: text})
		}
		line++
		w.reg.Advance(path, line, next)
	})

	switch {
	case err == nil:
		delete(w.truncated, path)
		if prog.Lines > 0 {
			w.log.Debug("read lines", "path", path, "lines", prog.Lines, "offset", prog.Offset)
		}

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return

	case errors.Is(err, fs.ErrTruncated):
		if _, seen := w.truncated[path]; !seen {
			w.truncated[path] = struct{}{}
			w.log.Warn("file shrank below consumed offset, reading resumes at the old offset once it grows",
				"path", path,
				"offset", tf.Offset,
				"next_line", tf.NextLine,
			)
		}

	default:
		w.log.Warn("cannot read file", "path", path, "reason", fs.Reason(err), "error", err)
	}
}

func (w *Watcher) report(m Match) {
	w.mu.Lock()
	w.stats.Matches++
	w.mu.Unlock()

	w.log.Info("magic text found", "path", m.Path, "line", m.Line)
	if w.onMatch != nil {
		w.onMatch(m)
	}
}

// Package watcher runs the scan loop: it polls the watch root, keeps the
// registry in step with what is on disk and reports appended lines that
// contain the magic text.
package watcher

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/raoulx24/dirwatcher/internal/config"
	"github.com/raoulx24/dirwatcher/internal/fsprobe"
	"github.com/raoulx24/dirwatcher/internal/logging"
	"github.com/raoulx24/dirwatcher/internal/mailbox"
	"github.com/raoulx24/dirwatcher/internal/registry"
)

// Match is one line that contained the magic text.
type Match struct {
	Path string
	Line int // 1-based
	Text string
}

// MatchHandler is called from the scan loop for every match.
type MatchHandler func(Match)

// Stats are the loop counters since Run started.
type Stats struct {
	Started    time.Time
	LastScan   time.Time
	Iterations int
	Found      int
	Removed    int
	Matches    int
}

// Option customises a Watcher.
type Option func(*Watcher)

// WithMatchHandler registers h to receive matches in addition to the log.
func WithMatchHandler(h MatchHandler) Option {
	return func(w *Watcher) { w.onMatch = h }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(w *Watcher) { w.now = now }
}

// Watcher owns the registry and is driven by a single goroutine.
type Watcher struct {
	cfg config.WatchConfig
	log logging.Logger
	reg *registry.Registry

	// wake carries change notifications that end a poll wait early.
	wake *mailbox.Mailbox[string]

	onMatch MatchHandler
	now     func() time.Time

	// truncated remembers files already reported as shorter than their
	// consumed offset. Only the loop touches it.
	truncated map[string]struct{}

	mu    sync.RWMutex
	stats Stats
}

// New creates a watcher for cfg. cfg is expected to be validated.
func New(cfg config.WatchConfig, log logging.Logger, opts ...Option) *Watcher {
	w := &Watcher{
		cfg:       cfg,
		log:       log,
		reg:       registry.New(),
		wake:      mailbox.New[string](),
		now:       time.Now,
		truncated: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run loops until ctx is cancelled. It never returns early because of scan
// or read failures; those are logged and retried on the next interval.
func (w *Watcher) Run(ctx context.Context) {
	w.mu.Lock()
	w.stats.Started = w.now()
	w.mu.Unlock()

	w.logBanner()
	defer w.logSummary()

	w.startChangeSource(ctx)

	for ctx.Err() == nil {
		if !w.wait(ctx) {
			break
		}
		w.iterate(ctx)
	}
}

// iterate runs one scan and keeps the loop alive if it panics.
func (w *Watcher) iterate(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("scan iteration panicked", "panic", r)
		}
	}()
	w.Scan(ctx)
}

// startChangeSource chooses the wake-up strategy based on config.
func (w *Watcher) startChangeSource(ctx context.Context) {
	switch w.cfg.Mode {
	case config.ModeFsnotify:
		if err := w.startFsNotify(ctx); err != nil {
			w.log.Warn("fsnotify disabled, polling only", "error", err)
		}

	case config.ModeAuto:
		res := fsprobe.Probe(w.cfg.Root, fsprobe.DefaultTimeout)
		if !res.FsnotifySupported {
			w.log.Warn("fsnotify disabled, polling only", "reason", res.Reason)
			return
		}
		if err := w.startFsNotify(ctx); err != nil {
			w.log.Warn("fsnotify disabled, polling only", "error", err)
		}
	}
}

// Stats returns a copy of the loop counters.
func (w *Watcher) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

// Tracked returns the current registry entries, sorted by path.
func (w *Watcher) Tracked() []registry.TrackedFile {
	return w.reg.Snapshot()
}

// Uptime is the time since Run started, zero before that.
func (w *Watcher) Uptime() time.Duration {
	w.mu.RLock()
	started := w.stats.Started
	w.mu.RUnlock()
	if started.IsZero() {
		return 0
	}
	return w.now().Sub(started)
}

func (w *Watcher) logBanner() {
	w.log.Info("dirwatcher started",
		"pid", os.Getpid(),
		"started", w.Stats().Started.Format(time.RFC3339),
		"root", w.cfg.Root,
		"extension", w.cfg.Extension,
		"interval", w.cfg.PollInterval,
		"magic", w.cfg.MagicText,
		"mode", w.cfg.Mode,
	)
}

func (w *Watcher) logSummary() {
	st := w.Stats()
	w.log.Info("dirwatcher stopped",
		"uptime", w.Uptime().Round(time.Millisecond),
		"iterations", st.Iterations,
		"matches", st.Matches,
	)
}

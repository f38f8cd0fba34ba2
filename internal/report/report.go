// Package report periodically logs what the watcher is tracking.
package report

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/raoulx24/dirwatcher/internal/logging"
	"github.com/raoulx24/dirwatcher/internal/registry"
	"github.com/raoulx24/dirwatcher/internal/watcher"
)

// Source is what the reporter reads. *watcher.Watcher satisfies it.
type Source interface {
	Stats() watcher.Stats
	Tracked() []registry.TrackedFile
	Uptime() time.Duration
}

// Reporter runs the status job on a cron schedule.
type Reporter struct {
	src  Source
	log  logging.Logger
	cron *cron.Cron
}

// New parses schedule (standard five-field cron or a descriptor such as
// "@every 1m") and registers the status job.
func New(schedule string, src Source, log logging.Logger) (*Reporter, error) {
	r := &Reporter{
		src:  src,
		log:  log,
		cron: cron.New(cron.WithChain(cron.Recover(cronLogger{log}))),
	}
	if _, err := r.cron.AddFunc(schedule, r.Emit); err != nil {
		return nil, fmt.Errorf("parsing report schedule %q: %w", schedule, err)
	}
	return r, nil
}

// Start runs the scheduler in its own goroutine.
func (r *Reporter) Start() {
	r.cron.Start()
}

// Stop halts the scheduler and waits for a running job to finish.
func (r *Reporter) Stop() {
	<-r.cron.Stop().Done()
}

// Emit logs one status line and a debug line per tracked file.
func (r *Reporter) Emit() {
	st := r.src.Stats()
	files := r.src.Tracked()

	r.log.Info("status",
		"tracked", len(files),
		"iterations", st.Iterations,
		"matches", st.Matches,
		"found", st.Found,
		"removed", st.Removed,
		"uptime", r.src.Uptime().Round(time.Second),
		"last_scan", st.LastScan,
	)
	for _, f := range files {
		r.log.Debug("tracked file", "path", f.Path, "next_line", f.NextLine, "offset", f.Offset)
	}
}

// cronLogger adapts logging.Logger to cron.Logger.
type cronLogger struct {
	log logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}

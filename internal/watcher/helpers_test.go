package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/raoulx24/dirwatcher/internal/config"
)

type logEntry struct {
	level string
	msg   string
	attrs map[string]any
}

// recorder is a logging.Logger that keeps every entry.
type recorder struct {
	mu      sync.Mutex
	entries []logEntry
}

func (r *recorder) add(level, msg string, args []any) {
	attrs := make(map[string]any)
	for i := 0; i+1 < len(args); i += 2 {
		attrs[fmt.Sprint(args[i])] = args[i+1]
	}
	r.mu.Lock()
	r.entries = append(r.entries, logEntry{level, msg, attrs})
	r.mu.Unlock()
}

func (r *recorder) Debug(msg string, args ...any) { r.add("debug", msg, args) }
func (r *recorder) Info(msg string, args ...any)  { r.add("info", msg, args) }
func (r *recorder) Warn(msg string, args ...any)  { r.add("warn", msg, args) }
func (r *recorder) Error(msg string, args ...any) { r.add("error", msg, args) }

// paths returns the "path" attribute of every entry with msg.
func (r *recorder) paths(msg string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.entries {
		if e.msg == msg {
			out = append(out, fmt.Sprint(e.attrs["path"]))
		}
	}
	return out
}

func (r *recorder) count(level, msg string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.level == level && e.msg == msg {
			n++
		}
	}
	return n
}

func testConfig(root string) config.WatchConfig {
	return config.WatchConfig{
		Root:         root,
		Extension:    ".txt",
		MagicText:    "ALERT",
		PollInterval: 10 * time.Millisecond,
		Mode:         config.ModePoll,
	}
}

func appendFile(t *testing.T, path, s string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(s)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

// matchSink collects matches delivered to a MatchHandler.
type matchSink struct {
	mu      sync.Mutex
	matches []Match
}

func (s *matchSink) handle(m Match) {
	s.mu.Lock()
	s.matches = append(s.matches, m)
	s.mu.Unlock()
}

func (s *matchSink) all() []Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Match(nil), s.matches...)
}

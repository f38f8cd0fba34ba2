// Package registry keeps the set of watched files and how far each one has
// been read.
package registry

import (
	"sort"
	"sync"
)

// TrackedFile is the read progress of one watched file.
type TrackedFile struct {
	Path     string
	NextLine int   // 1-based number of the next unread line
	Offset   int64 // bytes consumed, always at a line boundary
}

// Registry maps path to progress. Its keys are exactly the paths passed to
// the last Reconcile.
type Registry struct {
	mu    sync.RWMutex
	files map[string]*TrackedFile
}

func New() *Registry {
	return &Registry{files: make(map[string]*TrackedFile)}
}

// Reconcile makes the key set equal to paths. Added paths are reported in
// input order, removed ones sorted.
func (r *Registry) Reconcile(paths []string) (added, removed []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if _, dup := current[p]; dup {
			continue
		}
		current[p] = struct{}{}

		if _, ok := r.files[p]; !ok {
			r.files[p] = &TrackedFile{Path: p, NextLine: 1}
			added = append(added, p)
		}
	}

	for p := range r.files {
		if _, ok := current[p]; !ok {
			delete(r.files, p)
			removed = append(removed, p)
		}
	}
	sort.Strings(removed)

	return added, removed
}

// Advance records progress for path. Untracked paths are ignored and
// progress never moves backwards.
func (r *Registry) Advance(path string, nextLine int, offset int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tf, ok := r.files[path]
	if !ok {
		return
	}
	if nextLine > tf.NextLine {
		tf.NextLine = nextLine
	}
	if offset > tf.Offset {
		tf.Offset = offset
	}
}

// Get returns a copy of the entry for path.
func (r *Registry) Get(path string) (TrackedFile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tf, ok := r.files[path]
	if !ok {
		return TrackedFile{}, false
	}
	return *tf, true
}

// Snapshot returns copies of every entry, sorted by path.
func (r *Registry) Snapshot() []TrackedFile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]TrackedFile, 0, len(r.files))
	for _, tf := range r.files {
		out = append(out, *tf)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trackedPaths(r *Registry) []string {
	var out []string
	for _, tf := range r.Snapshot() {
		out = append(out, tf.Path)
	}
	return out
}

func TestReconcile_AddsInInputOrder(t *testing.T) {
	r := New()

	added, removed := r.Reconcile([]string{"/w/b.txt", "/w/a.txt"})

	assert.Equal(t, []string{"/w/b.txt", "/w/a.txt"}, added)
	assert.Empty(t, removed)

	tf, ok := r.Get("/w/a.txt")
	require.True(t, ok)
	assert.Equal(t, TrackedFile{Path: "/w/a.txt", NextLine: 1}, tf)
}

func TestReconcile_KeysEqualInput(t *testing.T) {
	r := New()
	r.Reconcile([]string{"/w/a.txt", "/w/b.txt", "/w/c.txt"})

	added, removed := r.Reconcile([]string{"/w/c.txt", "/w/d.txt"})

	assert.Equal(t, []string{"/w/d.txt"}, added)
	assert.Equal(t, []string{"/w/a.txt", "/w/b.txt"}, removed)
	assert.Equal(t, []string{"/w/c.txt", "/w/d.txt"}, trackedPaths(r))

	_, removed = r.Reconcile(nil)
	assert.Equal(t, []string{"/w/c.txt", "/w/d.txt"}, removed)
	assert.Empty(t, r.Snapshot())
}

func TestReconcile_Idempotent(t *testing.T) {
	r := New()
	paths := []string{"/w/a.txt", "/w/b.txt"}
	r.Reconcile(paths)

	added, removed := r.Reconcile(paths)
	assert.Empty(t, added)
	assert.Empty(t, removed)
}

func TestReconcile_DuplicatesInsertedOnce(t *testing.T) {
	r := New()
	added, _ := r.Reconcile([]string{"/w/a.txt", "/w/a.txt"})
	assert.Equal(t, []string{"/w/a.txt"}, added)
	assert.Len(t, r.Snapshot(), 1)
}

func TestReconcile_KeepsProgressOfSurvivors(t *testing.T) {
	r := New()
	r.Reconcile([]string{"/w/a.txt"})
	r.Advance("/w/a.txt", 3, 42)

	r.Reconcile([]string{"/w/a.txt", "/w/b.txt"})

	tf, _ := r.Get("/w/a.txt")
	assert.Equal(t, 3, tf.NextLine)
	assert.Equal(t, int64(42), tf.Offset)
}

func TestReconcile_ReaddedStartsOver(t *testing.T) {
	r := New()
	r.Reconcile([]string{"/w/a.txt"})
	r.Advance("/w/a.txt", 5, 100)
	r.Reconcile(nil)

	added, _ := r.Reconcile([]string{"/w/a.txt"})
	assert.Equal(t, []string{"/w/a.txt"}, added)

	tf, _ := r.Get("/w/a.txt")
	assert.Equal(t, 1, tf.NextLine)
	assert.Zero(t, tf.Offset)
}

func TestAdvance_UntrackedIsNoop(t *testing.T) {
	r := New()
	assert.NotPanics(t, func() { r.Advance("/w/ghost.txt", 2, 10) })
	_, ok := r.Get("/w/ghost.txt")
	assert.False(t, ok)
}

func TestAdvance_Monotonic(t *testing.T) {
	r := New()
	r.Reconcile([]string{"/w/a.txt"})

	r.Advance("/w/a.txt", 4, 30)
	r.Advance("/w/a.txt", 2, 10)

	tf, _ := r.Get("/w/a.txt")
	assert.Equal(t, 4, tf.NextLine)
	assert.Equal(t, int64(30), tf.Offset)
}

func TestSnapshot_SortedCopies(t *testing.T) {
	r := New()
	r.Reconcile([]string{"/w/b.txt", "/w/a.txt"})

	snap := r.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "/w/a.txt", snap[0].Path)

	snap[0].NextLine = 99
	tf, _ := r.Get("/w/a.txt")
	assert.Equal(t, 1, tf.NextLine)
}

// Package fs holds the file system primitives of dirwatcher: the recursive
// listing of watched files and the complete-line reader used to consume
// appended content.
package fs

import (
	"errors"
	"fmt"
)

// Kind classifies a listing failure.
type Kind int

const (
	KindIO Kind = iota
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	default:
		return "io"
	}
}

// ListError is returned by ListMatching when the root itself cannot be walked.
type ListError struct {
	Kind Kind
	Root string
	Err  error
}

func (e *ListError) Error() string {
	return fmt.Sprintf("listing %s (%s): %v", e.Root, e.Kind, e.Err)
}

func (e *ListError) Unwrap() error { return e.Err }

// ErrTruncated reports a file that is now shorter than the consumed offset.
var ErrTruncated = errors.New("file shorter than consumed offset")

// ErrNotRegular reports a path that is no longer a regular file, e.g. a
// FIFO swapped in after listing. Opening one could block.
var ErrNotRegular = errors.New("not a regular file")

// Progress is where a read stopped.
type Progress struct {
	Offset int64 // byte offset just after the last complete line
	Lines  int   // complete lines consumed by this call
}

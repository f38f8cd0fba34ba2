package fs

import (
	"errors"
	iofs "io/fs"
	"syscall"
)

// defines helpers for classifying filesystem errors.
// These determine whether an operation should retry or fail immediately.

func isTransient(err error) bool {
	if errors.Is(err, syscall.EAGAIN) ||
		errors.Is(err, syscall.EBUSY) ||
		errors.Is(err, syscall.ETIMEDOUT) {
		return true
	}

	// extend here for cloud FS specific errors if needed
	return false
}

// IsNotExist reports whether err means the file is gone.
func IsNotExist(err error) bool {
	return errors.Is(err, iofs.ErrNotExist)
}

// IsPermission reports whether err is an access failure.
func IsPermission(err error) bool {
	return errors.Is(err, iofs.ErrPermission)
}

// Reason gives a short label for log lines.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case IsNotExist(err):
		return "vanished"
	case IsPermission(err):
		return "permission denied"
	case errors.Is(err, ErrTruncated):
		return "truncated"
	case errors.Is(err, ErrNotRegular):
		return "not a regular file"
	default:
		return "io error"
	}
}

package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ListMatching walks root recursively and returns every regular file whose
// name ends with ext, in lexical walk order. Symlinks are kept when they
// point at a regular file or cannot be resolved; the reader reports the
// latter. FIFOs, sockets and devices are never listed.
//
// Failures on the root are returned as *ListError. Entries below the root
// that cannot be read are skipped.
func ListMatching(root, ext string) ([]string, error) {
	st, err := os.Stat(root)
	if err != nil {
		kind := KindIO
		if errors.Is(err, iofs.ErrNotExist) {
			kind = KindNotFound
		}
		return nil, &ListError{Kind: kind, Root: root, Err: err}
	}
	if !st.IsDir() {
		return nil, &ListError{Kind: KindNotFound, Root: root, Err: errors.New("not a directory")}
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ext) {
			return nil
		}
		if keepEntry(path, d) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		kind := KindIO
		if errors.Is(err, iofs.ErrNotExist) {
			kind = KindNotFound
		}
		return nil, &ListError{Kind: kind, Root: root, Err: err}
	}

	return paths, nil
}

// keepEntry reports whether a matching entry is something ReadLines can
// consume without blocking.
func keepEntry(path string, d iofs.DirEntry) bool {
	mode := d.Type()
	if mode.IsRegular() {
		return true
	}
	if mode&iofs.ModeSymlink == 0 {
		return false
	}

	st, err := os.Stat(path)
	if err != nil {
		return true
	}
	return st.Mode().IsRegular()
}

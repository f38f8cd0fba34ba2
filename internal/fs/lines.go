package fs

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"
)

// ReadLines reads the complete lines of path that start at byte offset and
// calls fn for each one, terminator stripped, with the offset just past it.
//
// A line is complete only once its '\n' has been written; a trailing
// fragment is left for a later call. ReadLines never waits for more data.
func ReadLines(ctx context.Context, path string, offset int64, fn func(line string, next int64)) (Progress, error) {
	p := Progress{Offset: offset}

	st, err := os.Stat(path)
	if err != nil {
		return p, err
	}
	if !st.Mode().IsRegular() {
		return p, ErrNotRegular
	}

	var f *os.File
	err = retry(ctx, "open", func() error {
		var err error
		f, err = os.Open(path)
		return err
	})
	if err != nil {
		return p, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return p, err
	}
	if info.Size() < offset {
		return p, ErrTruncated
	}
	if info.Size() == offset {
		return p, nil
	}

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return p, err
	}

	// ReadString tracks exact byte counts; bufio.Scanner would hand back
	// an unterminated tail as if it were a line.
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return p, nil
			}
			return p, err
		}

		p.Offset += int64(len(line))
		p.Lines++
		fn(trimNewline(line), p.Offset)
	}
}

// trimNewline removes trailing \n and \r\n from a line.
func trimNewline(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

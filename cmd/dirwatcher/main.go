// dirwatcher watches a directory tree for files with a given extension and
// logs every newly appended line that contains a magic text.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

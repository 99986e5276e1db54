package makeultra

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"unicode/utf8"
)

// Walker produces the stream of paths under a set of configured folders
// (spec §6, component G). The default implementation walks the local
// filesystem; it carries no ignore-file semantics of its own.
type Walker struct {
	folders []string
}

// NewWalker returns a Walker over folders.
func NewWalker(folders []string) *Walker {
	return &Walker{folders: folders}
}

// Walk sends every non-directory path under the configured folders to out,
// then closes out. It stops and returns an error the moment a non-UTF-8
// path is encountered (spec §6: "non-UTF-8 paths terminate the run").
func (w *Walker) Walk(out chan<- string) error {
	defer close(out)
	for _, folder := range w.folders {
		err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if !utf8.ValidString(path) {
				return fmt.Errorf("non-UTF-8 path under %q: %q", folder, path)
			}
			out <- path
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

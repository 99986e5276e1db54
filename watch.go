package makeultra

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch re-runs run every time a file changes in a directory under any of
// folders. Only directories that exist when Watch starts are watched;
// directories created later are not added. Once watching has started, it
// blocks until the watcher's event or error channel is closed (returning
// nil) or the process is interrupted. Watcher errors and run errors are
// reported but do not stop watching: the next change still triggers
// another attempt.
func Watch(folders []string, run func() error) error {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer fsWatch.Close()

	for _, folder := range folders {
		if err := filepath.WalkDir(folder, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return fsWatch.Add(path)
			}
			return nil
		}); err != nil {
			return fmt.Errorf("watching %q: %w", folder, err)
		}
	}

	fmt.Fprintln(os.Stderr, "makeultra: watching for changes")
	for {
		select {
		case event, ok := <-fsWatch.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			fmt.Fprintf(os.Stderr, "makeultra: %s changed, rebuilding\n", event.Name)
			if err := run(); err != nil {
				fmt.Fprintf(os.Stderr, "makeultra: build error: %v\n", err)
			}
		case err, ok := <-fsWatch.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "makeultra: watcher error: %v\n", err)
		}
	}
}

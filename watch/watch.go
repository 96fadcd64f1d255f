// Package watch implements venus-gen's optional "rerun on change" mode,
// added because a one-shot generator invocation is otherwise the only
// option and fsnotify is already a dependency elsewhere in the codebase.
package watch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Run watches the directories containing each of paths and invokes build
// once immediately, then again after every filesystem event, until ctx is
// canceled. Run returns an error only when the watcher cannot be
// constructed or a directory cannot be watched; it returns nil once ctx is
// canceled or the watcher's channels close. Per-run build errors are printed
// and are non-fatal to the watch loop so the process can be left
// running across edits. The all-errors-are-fatal, no-partial-output contract
// still holds for each individual run; it just doesn't end the process.
func Run(ctx context.Context, paths []string, build func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	dirs := map[string]bool{}
	for _, p := range paths {
		dirs[filepath.Dir(p)] = true
	}
	for d := range dirs {
		if err := watcher.Add(d); err != nil {
			return fmt.Errorf("watch: %w", err)
		}
	}

	if err := build(); err != nil {
		fmt.Println("venus-gen: build failed:", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if err := build(); err != nil {
				fmt.Println("venus-gen: build failed:", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Println("venus-gen: watch error:", err)
		}
	}
}

package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounce groups rapid successive writes to the same file into one run.
const debounce = 100 * time.Millisecond

// Watcher re-validates Python files as they change on disk.
type Watcher struct {
	engine   *Engine
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	report   func(*Result)
	watching bool
}

// NewWatcher wraps engine so every saved .py file is re-validated.
// report receives the result of each re-run.
func NewWatcher(engine *Engine, logger *zap.Logger, report func(*Result)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		engine:  engine,
		logger:  logger,
		watcher: fsWatcher,
		report:  report,
	}, nil
}

// Start registers every directory under the given roots and begins
// watching. It returns immediately; events are handled until the
// context is canceled or Stop is called.
func (w *Watcher) Start(ctx context.Context, roots []string) error {
	if w.watching {
		return fmt.Errorf("already watching")
	}

	for _, root := range roots {
		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				base := filepath.Base(path)
				if excludedDirs[base] || (path != root && strings.HasPrefix(base, ".")) {
					return filepath.SkipDir
				}
				return w.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("adding %s to watcher: %w", root, err)
		}
	}

	w.watching = true
	go w.loop(ctx)
	return nil
}

// Stop ends watching and releases the underlying watcher.
func (w *Watcher) Stop() error {
	w.watching = false
	return w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	for w.watching {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if filepath.Ext(event.Name) != ".py" {
		return
	}

	time.Sleep(debounce)
	w.logger.Info("file changed", zap.String("path", event.Name))

	result := w.engine.RunFile(ctx, event.Name)
	if w.report != nil {
		w.report(result)
	}
}

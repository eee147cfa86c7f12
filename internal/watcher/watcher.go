package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"culler/internal/fileutil"
	"culler/internal/logging"
)

// Watcher signals the workflow when files change under the scan roots so an
// early cycle can run instead of waiting out the full interval.
type Watcher struct {
	roots  []string
	settle time.Duration
	logger *slog.Logger

	fsw     *fsnotify.Watcher
	trigger chan struct{}
}

// New builds a Watcher over the given roots. The settle duration is the quiet
// period after the last event before a trigger fires, so a large copy does
// not cause a scan per file.
func New(roots []string, settle time.Duration, logger *slog.Logger) (*Watcher, error) {
	if settle <= 0 {
		settle = 5 * time.Second
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fs watcher: %w", err)
	}
	return &Watcher{
		roots:   roots,
		settle:  settle,
		logger:  logger.With("component", "watcher"),
		fsw:     fsw,
		trigger: make(chan struct{}, 1),
	}, nil
}

// Triggers returns the channel that receives one signal per settled burst of
// filesystem changes.
func (w *Watcher) Triggers() <-chan struct{} {
	return w.trigger
}

// Start registers the roots and their subdirectories and begins watching.
// It returns once watching is established; events are handled until the
// context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	for _, root := range w.roots {
		if err := w.addTree(root); err != nil {
			return err
		}
	}
	go w.run(ctx)
	return nil
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// addTree registers dir and every non-hidden subdirectory. fsnotify watches
// are not recursive, so new directories are added as Create events arrive.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			w.logger.Warn("watch registration skipped subtree", "path", path, "error", walkErr)
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !entry.IsDir() {
			return nil
		}
		if path != dir && fileutil.IsHidden(entry.Name()) {
			return fs.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) run(ctx context.Context) {
	var settle *time.Timer
	var settleC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if settle != nil {
				settle.Stop()
			}
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !fileutil.IsHidden(filepath.Base(event.Name)) {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn("watch new directory failed", "path", event.Name, "error", err)
					}
				}
			}
			if settle == nil {
				settle = time.NewTimer(w.settle)
				settleC = settle.C
			} else {
				if !settle.Stop() {
					select {
					case <-settle.C:
					default:
					}
				}
				settle.Reset(w.settle)
			}
		case <-settleC:
			select {
			case w.trigger <- struct{}{}:
				w.logger.Debug("filesystem change trigger fired")
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("fs watcher error", "error", err)
		}
	}
}

// Package ingest discovers PDS files arriving in the data directory.
package ingest

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/TheCodeHarbor/valvoline-pds-api/constants"
)

type WatchConfig struct {
	Roots       []string // directories to watch (recursive)
	AllowedExts map[string]struct{}
	InitialScan bool          // if true, walk roots and emit existing files
	Debounce    time.Duration // coalesce rapid update/rename bursts
}

// StartWatcher watches the configured roots and emits the path of every
// created or rewritten file with an allowed extension. Hidden files and
// directories are skipped. The channels close when ctx is done.
func StartWatcher(ctx context.Context, cfg WatchConfig, logger *slog.Logger) (<-chan string, <-chan error, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(cfg.Roots) == 0 {
		return nil, nil, errors.New("no roots provided")
	}
	if cfg.AllowedExts == nil {
		cfg.AllowedExts = constants.AllowedExtensions
	}
	evCh := make(chan string, 256)
	errCh := make(chan error, 1)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	addDir := func(root string) error {
		return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if isHidden(path) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return w.Add(path)
			}
			if cfg.InitialScan && allowed(path, cfg.AllowedExts) {
				select {
				case evCh <- path:
				default:
				}
			}
			return nil
		})
	}
	for _, r := range cfg.Roots {
		if err := addDir(r); err != nil {
			logger.Error("failed to add watch root", "root", r, "error", err)
			_ = w.Close()
			return nil, nil, err
		}
	}

	go func() {
		defer close(evCh)
		defer close(errCh)
		defer w.Close()

		var (
			mu      sync.Mutex
			timer   *time.Timer
			pending = map[string]struct{}{}
		)

		// called from the timer goroutine as well as the event loop
		sendPending := func() {
			mu.Lock()
			defer mu.Unlock()
			for p := range pending {
				select {
				case evCh <- p:
				default:
				}
				delete(pending, p)
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-w.Events:
				if !ok {
					return
				}
				if e.Op&fsnotify.Create == fsnotify.Create {
					// Newly created directories get watched too; Add on a
					// plain file fails and is ignored.
					_ = w.Add(e.Name)
				}
				if allowed(e.Name, cfg.AllowedExts) && e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
					mu.Lock()
					pending[e.Name] = struct{}{}
					mu.Unlock()
					if cfg.Debounce > 0 {
						if timer != nil {
							timer.Stop()
						}
						timer = time.AfterFunc(cfg.Debounce, sendPending)
					} else {
						sendPending()
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Error("watcher error", "error", err)
				select {
				case errCh <- err:
				default:
				}
			}
		}
	}()

	return evCh, errCh, nil
}

func allowed(path string, exts map[string]struct{}) bool {
	_, ok := exts[constants.NormalizeExt(filepath.Ext(path))]
	return ok
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

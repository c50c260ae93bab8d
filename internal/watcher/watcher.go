package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/flock"
	"github.com/nguyentantai21042004/reelscript/internal/logger"
)

var linkExtensions = []string{".txt", ".url"}

type implWatcher struct {
	inputDir      string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	settleDelay   time.Duration
	lock          *flock.Flock
	wg            sync.WaitGroup

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// Start handles link files already in the inbox, then every new one, until
// ctx is done. It waits for running handlers before returning.
func (w *implWatcher) Start(ctx context.Context) error {
	ok, err := w.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire inbox lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another watcher is already running on %s", w.inputDir)
	}
	defer func() {
		if err := w.lock.Unlock(); err != nil {
			w.logger.Warn(context.Background(), "Failed to release inbox lock: %v", err)
		}
	}()

	w.logger.Info(ctx, "Link watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inputDir)
	w.logger.Info(ctx, "Supported link files: %s", strings.Join(linkExtensions, ", "))

	existing, err := w.existingLinkFiles()
	if err != nil {
		return err
	}
	for _, path := range existing {
		w.logger.Info(ctx, "Found pending link file: %s", path)
		w.dispatch(ctx, path, 0)
	}

	for {
		select {
		case <-ctx.Done():
			return w.drain(ctx, ctx.Err())

		case event, ok := <-w.watcher.Events:
			if !ok {
				return w.drain(ctx, fmt.Errorf("watcher events channel closed"))
			}

			if !event.Has(fsnotify.Create) {
				continue
			}
			if !isLinkFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-link file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New link file detected: %s", event.Name)
			w.dispatch(ctx, event.Name, w.settleDelay)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return w.drain(ctx, fmt.Errorf("watcher errors channel closed"))
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// dispatch handles path in its own goroutine: it waits settle for the
// writer to finish, then for a semaphore slot, then runs the handler.
// The event loop never blocks here. A file already being handled is skipped.
func (w *implWatcher) dispatch(ctx context.Context, path string, settle time.Duration) {
	w.mu.Lock()
	if _, busy := w.inFlight[path]; busy {
		w.mu.Unlock()
		w.logger.Debug(ctx, "Already processing %s", path)
		return
	}
	w.inFlight[path] = struct{}{}
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.done(path)

		if settle > 0 {
			timer := time.NewTimer(settle)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return
			}
		}

		select {
		case w.semaphore <- struct{}{}:
		case <-ctx.Done():
			return
		}
		defer func() { <-w.semaphore }()

		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	}()
}

func (w *implWatcher) done(path string) {
	w.mu.Lock()
	delete(w.inFlight, path)
	w.mu.Unlock()
}

func (w *implWatcher) drain(ctx context.Context, err error) error {
	w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
	w.wg.Wait()
	w.logger.Info(ctx, "Link watcher stopped")
	return err
}

// Stop closes the file watcher and the lock file.
func (w *implWatcher) Stop() error {
	err := w.watcher.Close()
	if cerr := w.lock.Close(); err == nil {
		err = cerr
	}
	return err
}

func (w *implWatcher) existingLinkFiles() ([]string, error) {
	entries, err := os.ReadDir(w.inputDir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !isLinkFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(w.inputDir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// isLinkFile reports whether path is a visible .txt or .url file.
func isLinkFile(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range linkExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

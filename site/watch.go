package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DebounceDelay is the quiet period after the last change before a rebuild.
var DebounceDelay = 300 * time.Millisecond

// Watch calls rebuild whenever something changes below any of paths, until
// ctx is cancelled. Bursts of events cause a single rebuild, and rebuilds
// never run concurrently. A failed rebuild is logged and watching goes on.
func Watch(ctx context.Context, paths []string, rebuild func() error, logger *zap.SugaredLogger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer watcher.Close()

	ws := &watchSet{files: map[string]bool{}}
	for _, p := range paths {
		if err := ws.add(watcher, p, logger); err != nil {
			return err
		}
	}

	rebuildReq, trigger := newDebouncer(DebounceDelay)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		rebuildWorker(ctx, rebuildReq, rebuild, logger)
	}()
	defer wg.Wait()

	logger.Infow("watching for changes", "paths", paths)

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopped watching")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			handleEvent(watcher, ws, ev, trigger, logger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("watcher error", "error", err)
		}
	}
}

// newDebouncer returns a channel receiving one request per burst of calls
// to trigger.
func newDebouncer(delay time.Duration) (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}
	return req, trigger
}

// rebuildWorker serializes rebuilds. The request channel holds at most one
// pending request, so changes made during a rebuild cause exactly one more.
func rebuildWorker(ctx context.Context, req chan struct{}, rebuild func() error, logger *zap.SugaredLogger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-req:
			logger.Info("change detected, rebuilding")
			start := time.Now()
			if err := rebuild(); err != nil {
				logger.Errorw("rebuild failed", "error", err)
				continue
			}
			logger.Infow("rebuild done", "elapsed", time.Since(start))
		}
	}
}

// watchSet records what was asked to be watched. Plain files are watched
// through their parent directory, which survives editors that replace the
// file on save, so events for siblings must be filtered out.
type watchSet struct {
	roots []string
	files map[string]bool
}

func (ws *watchSet) add(w *fsnotify.Watcher, root string, logger *zap.SugaredLogger) error {
	fi, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("watching %s: %w", root, err)
	}
	root = filepath.Clean(root)
	if !fi.IsDir() {
		ws.files[root] = true
		return w.Add(filepath.Dir(root))
	}
	ws.roots = append(ws.roots, root)
	return addDirsRecursive(w, root, logger)
}

func (ws *watchSet) contains(path string) bool {
	path = filepath.Clean(path)
	if ws.files[path] {
		return true
	}
	for _, root := range ws.roots {
		if rel, err := filepath.Rel(root, path); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func handleEvent(watcher *fsnotify.Watcher, ws *watchSet, ev fsnotify.Event, trigger func(), logger *zap.SugaredLogger) {
	if shouldIgnoreEvent(ev.Name) || !ws.contains(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(watcher, ev.Name, logger)
		}
	}
	logger.Debugw("file changed", "path", ev.Name, "op", ev.Op.String())
	trigger()
}

func addDirsRecursive(w *fsnotify.Watcher, root string, logger *zap.SugaredLogger) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				logger.Warnw("watch add failed", "dir", path, "error", err)
			}
		}
		return nil
	})
}

// shouldIgnoreEvent reports whether path is a hidden, swap or backup file.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}

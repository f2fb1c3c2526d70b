package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fieldwatch/fieldwatch/observe"
)

const debounceInterval = 100 * time.Millisecond

// FileState is the property value a FileWatcher maintains for a watched
// file. It is a comparable value type so an fsnotify event that changes
// nothing observable short-circuits in Set and raises no notification.
type FileState struct {
	Exists  bool      `json:"exists"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// FileWatcher mirrors watched files into an observe.Object: each watched
// path becomes a property named by its path relative to workDir, with a
// FileState value refreshed on debounced fsnotify events.
//
// After Start, the object is mutated exclusively from the watcher's event
// loop; callers must not mutate it concurrently. Reading is out of scope of
// the object's guarantees as well, so consumers should observe changes
// through an ObjectWatcher subscription rather than polling Get.
type FileWatcher struct {
	workDir string
	object  *observe.Object
	watcher *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc

	// refreshCh funnels debounce-timer fires back onto the event loop so
	// all object mutations happen on one goroutine.
	refreshCh chan string

	pathMu       sync.Mutex
	pathRefCount map[string]int

	timerMu  sync.Mutex
	timerMap map[string]*time.Timer
}

func NewFileWatcher(workDir string, object *observe.Object) *FileWatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &FileWatcher{
		workDir:      workDir,
		object:       object,
		ctx:          ctx,
		cancel:       cancel,
		refreshCh:    make(chan string, 16),
		pathRefCount: make(map[string]int),
		timerMap:     make(map[string]*time.Timer),
	}
}

func (w *FileWatcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher

	go w.eventLoop()
	slog.Info("FileWatcher started", "workDir", w.workDir)
	return nil
}

func (w *FileWatcher) Stop() {
	w.cancel()
	if w.watcher != nil {
		w.watcher.Close()
	}

	// Cancel any pending debounce timers
	w.timerMu.Lock()
	for _, timer := range w.timerMap {
		timer.Stop()
	}
	w.timerMap = make(map[string]*time.Timer)
	w.timerMu.Unlock()

	slog.Info("FileWatcher stopped")
}

// Watch starts mirroring the given path (relative to workDir). Watches are
// refcounted: repeated Watch calls for one path share a single fsnotify
// watch. The property is seeded asynchronously on the event loop, which is
// the only goroutine allowed to mutate the object. Must be called after
// Start.
func (w *FileWatcher) Watch(path string) error {
	fullPath := filepath.Join(w.workDir, path)
	if _, err := os.Stat(fullPath); err != nil {
		return err
	}

	// Start the fsnotify watch on the first reference only
	w.pathMu.Lock()
	if w.pathRefCount[path] == 0 {
		if err := w.watcher.Add(fullPath); err != nil {
			w.pathMu.Unlock()
			return err
		}
		slog.Debug("started watching path", "path", path)
	}
	w.pathRefCount[path]++
	w.pathMu.Unlock()

	select {
	case w.refreshCh <- path:
	case <-w.ctx.Done():
	}

	return nil
}

// Unwatch drops one reference to the path; the fsnotify watch is removed
// when the last reference is gone. The property keeps its last state.
func (w *FileWatcher) Unwatch(path string) {
	w.pathMu.Lock()
	defer w.pathMu.Unlock()

	if w.pathRefCount[path] == 0 {
		return
	}

	w.pathRefCount[path]--
	if w.pathRefCount[path] == 0 {
		delete(w.pathRefCount, path)
		w.watcher.Remove(filepath.Join(w.workDir, path))
		slog.Debug("stopped watching path", "path", path)
	}
}

func (w *FileWatcher) eventLoop() {
	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case path := <-w.refreshCh:
			w.refresh(path)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("fsnotify error", "error", err)
		}
	}
}

func (w *FileWatcher) handleEvent(event fsnotify.Event) {
	relPath, err := filepath.Rel(w.workDir, event.Name)
	if err != nil {
		slog.Error("failed to get relative path", "path", event.Name, "error", err)
		return
	}

	w.timerMu.Lock()
	if timer, exists := w.timerMap[relPath]; exists {
		timer.Stop()
	}
	// The timer fires on its own goroutine, so it only enqueues; the
	// refresh itself runs on the event loop.
	w.timerMap[relPath] = time.AfterFunc(debounceInterval, func() {
		select {
		case w.refreshCh <- relPath:
		case <-w.ctx.Done():
		}
		w.timerMu.Lock()
		delete(w.timerMap, relPath)
		w.timerMu.Unlock()
	})
	w.timerMu.Unlock()
}

// refresh re-stats the file and updates its property. Runs on the event
// loop only.
func (w *FileWatcher) refresh(path string) {
	// Skip if watcher is stopped (timer may fire after Stop)
	if w.ctx.Err() != nil {
		return
	}

	state := statFile(filepath.Join(w.workDir, path))
	changed, err := w.object.Set(path, state)
	if err != nil {
		slog.Error("failed to update file property", "path", path, "error", err)
		return
	}
	if changed {
		slog.Debug("file property updated", "path", path, "exists", state.Exists, "size", state.Size)
	}
}

func statFile(fullPath string) FileState {
	info, err := os.Stat(fullPath)
	if err != nil {
		return FileState{Exists: false}
	}
	return FileState{
		Exists:  true,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}

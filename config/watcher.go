package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/glbind/errors"
	"github.com/teranos/glbind/logger"
)

// ChangeCallback is called, after debouncing, with the last file that changed.
type ChangeCallback func(path string) error

// Watcher watches the config file and the registry document and calls its
// callbacks once a burst of changes settles.
//
// Parent directories are watched rather than the files themselves so that
// editors which save by rename keep being observed.
type Watcher struct {
	watcher        *fsnotify.Watcher
	targets        map[string]bool // absolute paths
	callbacks      []ChangeCallback
	mu             sync.RWMutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	lastChanged    string

	ownWriteUntil   time.Time
	isOwnWriteMutex sync.Mutex

	done chan struct{}
}

// NewWatcher watches paths (empty entries are ignored).
func NewWatcher(debounce time.Duration, paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		watcher:        fw,
		targets:        make(map[string]bool),
		debouncePeriod: debounce,
		done:           make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", p)
		}
		w.targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	if len(w.targets) == 0 {
		fw.Close()
		return nil, errors.New("nothing to watch")
	}

	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", dir)
		}
	}
	return w, nil
}

// OnChange registers a callback.
func (w *Watcher) OnChange(cb ChangeCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, cb)
}

// ownWriteWindow is how long MarkOwnWrite suppresses events. One write
// usually produces several events (truncate, write, chmod).
const ownWriteWindow = 500 * time.Millisecond

// MarkOwnWrite makes the watcher ignore change events for a short while,
// e.g. those caused by Save.
func (w *Watcher) MarkOwnWrite() {
	w.isOwnWriteMutex.Lock()
	defer w.isOwnWriteMutex.Unlock()
	w.ownWriteUntil = time.Now().Add(ownWriteWindow)
}

func (w *Watcher) checkOwnWrite() bool {
	w.isOwnWriteMutex.Lock()
	defer w.isOwnWriteMutex.Unlock()
	return time.Now().Before(w.ownWriteUntil)
}

// Save writes cfg without triggering this watcher.
func (w *Watcher) Save(path string, cfg *Config) error {
	w.MarkOwnWrite()
	return Save(path, cfg)
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	go w.watchLoop()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if isBackupFile(event.Name) || !w.isTarget(event.Name) {
				continue
			}
			if w.checkOwnWrite() {
				logger.Debugw("Watcher ignoring own write",
					logger.FieldPath, event.Name)
				continue
			}

			logger.Debugw("Watcher detected change",
				logger.FieldPath, event.Name,
				"op", event.Op.String())
			w.scheduleChange(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnw("Watcher error", logger.FieldError, err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) isTarget(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return w.targets[abs]
}

// scheduleChange debounces bursts of events into one callback round.
func (w *Watcher) scheduleChange(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.lastChanged = path
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, w.fire)
}

func (w *Watcher) fire() {
	w.mu.RLock()
	path := w.lastChanged
	callbacks := make([]ChangeCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	for _, cb := range callbacks {
		if err := cb(path); err != nil {
			// Keep calling the remaining callbacks
			logger.Warnw("Watch callback failed",
				logger.FieldPath, path,
				logger.FieldError, err)
		}
	}
}

// Stop stops watching. Pending debounced callbacks are cancelled.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mu.Unlock()

	select {
	case <-w.done:
	default:
		close(w.done)
	}
	return w.watcher.Close()
}

package config

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file when it changes on disk.
type Watcher struct {
	fw      *fsnotify.Watcher
	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

// Watch monitors path's directory (saves land via rename, which replaces the
// inode) and calls onReload with each config that loads and validates.
// Invalid edits are logged and skipped; the running config stays untouched.
func Watch(path string, onReload func(Config)) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(absPath)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{fw: fw, done: make(chan struct{})}

	// Trailing-edge debounce: saves land as a remove+rename pair, so act only
	// once the burst has settled rather than on its first event.
	const debounceInterval = 100 * time.Millisecond

	go func() {
		debounce := time.NewTimer(debounceInterval)
		if !debounce.Stop() {
			<-debounce.C
		}
		defer debounce.Stop()

		for {
			select {
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if event.Name != absPath {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(debounceInterval)

			case <-debounce.C:
				cfg, err := Load(absPath)
				if err != nil {
					log.Printf("[config] reload failed: %v", err)
					continue
				}
				normalized, v := NormalizeAndValidate(cfg)
				if !v.OK() {
					log.Printf("[config] reload rejected: %v", v.Errors)
					continue
				}
				for _, warn := range v.Warnings {
					log.Printf("[config] warning: %s", warn)
				}
				onReload(normalized)

			case _, ok := <-fw.Errors:
				if !ok {
					return
				}

			case <-w.done:
				return
			}
		}
	}()

	return w, nil
}

// Stop ends monitoring. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}

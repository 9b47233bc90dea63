package filesystem

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"ripasso/internal/ports"
)

// Watcher watches the folder containing one vault file and forwards its
// change events to a ports.ChangeHandler. Watching the folder rather than
// the file survives wholesale replacement, which is exactly how both this
// process and external sync tools write the database.
type Watcher struct {
	vault    *Vault
	path     string
	debounce time.Duration
}

// Ensure Watcher implements the watcher port
var _ ports.VaultWatcher = (*Watcher)(nil)

// NewWatcher creates a watcher for the vault-relative file at path.
func NewWatcher(vault *Vault, path string) *Watcher {
	return &Watcher{
		vault:    vault,
		path:     vault.Normalize(path),
		debounce: 500 * time.Millisecond,
	}
}

// WithDebounce sets the debounce window. One save can surface as several
// fsnotify events; coalescing them keeps the notification the handler sees
// at zero-or-one per write, which is what its self-write guard expects.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Watch blocks until ctx is cancelled or the watcher fails, forwarding
// debounced (path, deleted) events to handler.
func (w *Watcher) Watch(ctx context.Context, handler ports.ChangeHandler) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	absPath := w.vault.abs(w.path)
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return err
	}

	log.Printf("Watching %s for changes", w.path)

	var mu sync.Mutex
	var writeTimer, removeTimer *time.Timer
	defer func() {
		mu.Lock()
		defer mu.Unlock()
		if writeTimer != nil {
			writeTimer.Stop()
		}
		if removeTimer != nil {
			removeTimer.Stop()
		}
	}()

	fire := func(deleted bool) {
		if err := handler.HandleFileChange(ctx, w.path, deleted); err != nil {
			log.Printf("Change handler error: %v", err)
		}
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filepath.Base(absPath) {
				continue
			}

			mu.Lock()
			switch {
			case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
				if writeTimer != nil {
					writeTimer.Stop()
				}
				writeTimer = time.AfterFunc(w.debounce, func() { fire(false) })
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				if removeTimer != nil {
					removeTimer.Stop()
				}
				removeTimer = time.AfterFunc(w.debounce, func() { fire(true) })
			}
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

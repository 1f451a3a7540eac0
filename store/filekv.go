package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"groovefm/logger"

	"github.com/fsnotify/fsnotify"
)

// ownWriteWindow is how long after one of our own writes an fsnotify event
// on the same file is attributed to us rather than to a foreign process.
const ownWriteWindow = 2 * time.Second

// FileKV stores each key as a JSON file under a directory. Writes go to a
// temp file first and are renamed into place. A watcher warns when the
// files change outside this process, since the store assumes a single
// writer.
type FileKV struct {
	dir     string
	watcher *fsnotify.Watcher

	mu        sync.Mutex
	ownWrites map[string]time.Time
}

// NewFileKV creates the directory if needed and starts the foreign-write
// watcher. A watcher failure is logged, not fatal.
func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create library dir %s: %w", dir, err)
	}

	kv := &FileKV{
		dir:       dir,
		ownWrites: make(map[string]time.Time),
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("library watcher unavailable", logger.ErrorField(err))
		return kv, nil
	}
	if err := watcher.Add(dir); err != nil {
		logger.Warn("library watcher cannot watch dir",
			logger.String("dir", dir), logger.ErrorField(err))
		watcher.Close()
		return kv, nil
	}
	kv.watcher = watcher
	go kv.watch()

	return kv, nil
}

// Close stops the watcher.
func (kv *FileKV) Close() error {
	if kv.watcher != nil {
		return kv.watcher.Close()
	}
	return nil
}

// Get reads the value for key. Returns (nil, nil) when the key has never
// been written.
func (kv *FileKV) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(kv.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read library key %s: %w", key, err)
	}
	return data, nil
}

// Set writes the value for key atomically.
func (kv *FileKV) Set(ctx context.Context, key string, value []byte) error {
	kv.markOwnWrite(key)

	path := kv.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0644); err != nil {
		return fmt.Errorf("write library key %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit library key %s: %w", key, err)
	}
	return nil
}

func (kv *FileKV) path(key string) string {
	return filepath.Join(kv.dir, key+".json")
}

func (kv *FileKV) markOwnWrite(key string) {
	kv.mu.Lock()
	kv.ownWrites[key] = time.Now()
	kv.mu.Unlock()
}

func (kv *FileKV) isOwnWrite(key string) bool {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	last, ok := kv.ownWrites[key]
	return ok && time.Since(last) < ownWriteWindow
}

// watch logs a warning whenever a library file changes without a matching
// write from this process. The store keeps working either way; the message
// exists so lost updates from a second writer are at least observable.
func (kv *FileKV) watch() {
	for {
		select {
		case event, ok := <-kv.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Base(event.Name)
			if !strings.HasSuffix(name, ".json") {
				continue
			}
			key := strings.TrimSuffix(name, ".json")
			if kv.isOwnWrite(key) {
				continue
			}
			logger.Warn("library file modified by another process",
				logger.String("key", key),
				logger.String("file", event.Name))
		case err, ok := <-kv.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("library watcher error", logger.ErrorField(err))
		}
	}
}

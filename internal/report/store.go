package report

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"formset/pkg/logging"

	"github.com/fsnotify/fsnotify"
)

// Store holds the current registry snapshot and can rebuild it when report
// definition files change. Readers get an immutable *Registry; the swap
// happens under the lock so a running dispatch keeps the snapshot it
// started with.
type Store struct {
	mu       sync.RWMutex
	registry *Registry

	// dir is the watched definition directory; empty means built-ins only.
	dir string

	// debounceInterval coalesces bursts of filesystem events into one reload.
	debounceInterval time.Duration
}

// NewStore builds a store from the built-in table plus definitions in dir.
func NewStore(dir string) (*Store, error) {
	registry, err := BuildRegistry(dir)
	if err != nil {
		return nil, err
	}
	return &Store{
		registry:         registry,
		dir:              dir,
		debounceInterval: 500 * time.Millisecond,
	}, nil
}

// Registry returns the current immutable snapshot.
func (s *Store) Registry() *Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry
}

// Reload rebuilds the registry from disk. On failure the previous snapshot
// stays in place.
func (s *Store) Reload() error {
	registry, err := BuildRegistry(s.dir)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.registry = registry
	s.mu.Unlock()
	logging.Info("config", "Reloaded report registry (%d reports)", len(registry.Names()))
	return nil
}

// Watch blocks, reloading the registry whenever a YAML file in the store's
// definition directory changes, until ctx is cancelled. A store without a
// directory returns immediately.
func (s *Store) Watch(ctx context.Context) error {
	if s.dir == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return err
	}
	logging.Info("config", "Watching %s for report definition changes", s.dir)

	var timer *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isDefinitionFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// Debounce: editors fire several events per save.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(s.debounceInterval, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
		case <-reload:
			if err := s.Reload(); err != nil {
				logging.Error("config", err, "Report definition reload failed, keeping previous registry")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("config", "Watcher error: %v", err)
		}
	}
}

func isDefinitionFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

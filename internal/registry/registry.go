// Package registry provides a global registry of record store backends.
// Backends register themselves in init() functions, so the CLI can pick one
// by name without importing every implementation directly.
package registry

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/kubb-counter/internal/core"
)

// Backend is a record store that holds resources until closed.
type Backend interface {
	core.RecordStore
	io.Closer
}

// Options carries the settings a backend factory may need.
// Each backend reads only the fields it understands.
type Options struct {
	DBPath  string        // SQLite database file
	APIURL  string        // Base URL of a record service
	Timeout time.Duration // Per-request timeout for remote backends
}

// BackendInfo contains metadata about a registered backend.
type BackendInfo struct {
	Name        string
	Description string
}

// Factory opens a backend with the given options.
type Factory func(opts Options) (Backend, error)

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a backend factory to the registry.
// Panics if a backend with the same name is already registered.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: backend %q already registered", name))
	}

	factories[name] = f
	descriptions[name] = description
}

// List returns information about all registered backends, sorted by name.
func List() []BackendInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]BackendInfo, 0, len(factories))
	for name := range factories {
		result = append(result, BackendInfo{
			Name:        name,
			Description: descriptions[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Open creates a backend by name.
// Returns an error if the name is not registered or the factory fails.
func Open(name string, opts Options) (Backend, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown backend %q", name)
	}

	b, err := f(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: open %s: %w", name, err)
	}
	return b, nil
}

// Exists checks if a backend with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}

package backend

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Factory creates a new context.
type Factory func() (Context, error)

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for backend selection (first available wins).
	backendPriority = []string{Offline, Headless}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the sorted names of registered backends.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// New creates a context from the named backend.
func New(name string) (Context, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return factory()
}

// Default creates a context from the first registered backend in priority
// order, falling back to any registered backend.
func Default() (Context, error) {
	registryMu.RLock()
	var candidates []Factory
	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok {
			candidates = append(candidates, factory)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(backends)) {
		if !slices.Contains(backendPriority, name) {
			candidates = append(candidates, backends[name])
		}
	}
	registryMu.RUnlock()

	var errs []error
	for _, factory := range candidates {
		ctx, err := factory()
		if err == nil {
			return ctx, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, ErrBackendNotAvailable
	}
	return nil, fmt.Errorf("%w: %w", ErrBackendNotAvailable, errors.Join(errs...))
}

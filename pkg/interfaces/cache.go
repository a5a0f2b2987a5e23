package interfaces

import "io"

// CacheLocator resolves logical cache keys (e.g. "schema.json") to backing
// storage. Implementations own path layout and directory creation; callers
// only see keys.
type CacheLocator interface {
	// Resolve returns the filesystem path backing the given key.
	Resolve(name string) (string, error)
	// Exists reports whether the key already has persisted content.
	Exists(name string) (bool, error)
	// Open opens the persisted content for reading.
	Open(name string) (io.ReadCloser, error)
	// Create opens the key for exclusive writing. It must fail when content
	// already exists so callers can rely on never clobbering a seeded cache.
	Create(name string) (io.WriteCloser, error)
}

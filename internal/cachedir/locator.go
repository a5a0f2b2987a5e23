package cachedir

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrKeyRequired reports an empty or path-escaping cache key.
	ErrKeyRequired = errors.New("cachedir: cache key is required")
	// ErrKeyInvalid reports a cache key that would resolve outside the root.
	ErrKeyInvalid = errors.New("cachedir: cache key must be a bare file name")
)

// Locator resolves logical cache keys to files under a single root
// directory. The root is created lazily on first resolution.
type Locator struct {
	root string
	app  string
}

// Option customises locator construction.
type Option func(*Locator)

// WithRoot pins the cache root to an explicit directory instead of the
// user-level cache directory.
func WithRoot(root string) Option {
	return func(l *Locator) {
		l.root = root
	}
}

// New constructs a locator scoped to the given application name. Without
// WithRoot the locator stores files under os.UserCacheDir()/<app>.
func New(app string, opts ...Option) *Locator {
	l := &Locator{app: strings.TrimSpace(app)}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Resolve returns the filesystem path backing the given key, creating the
// cache root when missing.
func (l *Locator) Resolve(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrKeyRequired
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrKeyInvalid, name)
	}

	root, err := l.rootDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("cachedir: create cache root %s: %w", root, err)
	}
	return filepath.Join(root, name), nil
}

// Exists reports whether the key already has persisted content.
func (l *Locator) Exists(name string) (bool, error) {
	path, err := l.Resolve(name)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("cachedir: stat %s: %w", path, err)
	}
	return true, nil
}

// Open opens the persisted content for reading.
func (l *Locator) Open(name string) (io.ReadCloser, error) {
	path, err := l.Resolve(name)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cachedir: open %s: %w", path, err)
	}
	return file, nil
}

// Create opens the key for exclusive writing. It fails when the key already
// has content so a seeded cache is never clobbered.
func (l *Locator) Create(name string) (io.WriteCloser, error) {
	path, err := l.Resolve(name)
	if err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cachedir: create %s: %w", path, err)
	}
	return file, nil
}

func (l *Locator) rootDir() (string, error) {
	if l.root != "" {
		return l.root, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("cachedir: resolve user cache dir: %w", err)
	}
	if l.app == "" {
		return base, nil
	}
	return filepath.Join(base, l.app), nil
}

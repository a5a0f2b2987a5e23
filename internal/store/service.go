package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-schema-store/internal/document"
	"github.com/goliatone/go-schema-store/internal/logging"
	"github.com/goliatone/go-schema-store/internal/validation"
	"github.com/goliatone/go-schema-store/pkg/interfaces"
)

// DefaultCacheKey is the logical cache key the schema is stored under.
const DefaultCacheKey = "schema.json"

// Service owns the lazily loaded schema document and the validation
// operations built on top of it. Implementations are not safe for concurrent
// use: callers serialize access or construct independent instances.
type Service interface {
	// Load returns the in-memory schema, reading and parsing the cached
	// file on first use. It never touches the network.
	Load(ctx context.Context) (map[string]any, error)
	// Download fetches the schema from the remote source and persists it,
	// failing when the cache destination already exists. It does not
	// populate the in-memory copy.
	Download(ctx context.Context) error
	// Get returns the in-memory schema without touching disk or network.
	Get() (map[string]any, bool)
	// Ensure makes the schema available, downloading only when a plain
	// load fails.
	Ensure(ctx context.Context) (map[string]any, error)
	// Validate checks a document against the schema. A non-conformant
	// document is a successful call with a non-empty result.
	Validate(ctx context.Context, doc any) (*validation.Result, error)
	// ValidateFrom decodes a document from source then validates it.
	ValidateFrom(ctx context.Context, source io.Reader, format document.Format) (*validation.Result, error)
}

// Option customises the store service.
type Option func(*service)

// WithLogger injects the logger used by store operations. Defaults to no-op.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCacheKey overrides the logical cache key the schema is stored under.
func WithCacheKey(key string) Option {
	return func(s *service) {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			s.cacheKey = trimmed
		}
	}
}

type service struct {
	locator  interfaces.CacheLocator
	remote   interfaces.RemoteSource
	logger   interfaces.Logger
	cacheKey string

	// cached holds the schema document once loaded. It is never replaced
	// or invalidated for the lifetime of the service.
	cached map[string]any
}

// NewService constructs a schema store over the given cache locator and
// remote source. The store starts empty; the first successful Load or
// Ensure populates it.
func NewService(locator interfaces.CacheLocator, remote interfaces.RemoteSource, opts ...Option) Service {
	s := &service{
		locator:  locator,
		remote:   remote,
		logger:   logging.NoOp(),
		cacheKey: DefaultCacheKey,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *service) Load(ctx context.Context) (map[string]any, error) {
	if s.cached != nil {
		s.logger.Debug("store.load.cached", "cache_key", s.cacheKey)
		return document.CloneMap(s.cached), nil
	}
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	file, err := s.locator.Open(s.cacheKey)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrSchemaNotFound, s.cacheKey, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrSchemaNotFound, s.cacheKey, err)
	}

	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrSchemaParse, s.cacheKey, err)
	}

	s.cached = schema
	s.logger.Info("store.load.complete", "cache_key", s.cacheKey, "bytes", len(data))
	return document.CloneMap(s.cached), nil
}

func (s *service) Download(ctx context.Context) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}

	exists, err := s.locator.Exists(s.cacheKey)
	if err != nil {
		return fmt.Errorf("%w: resolve %s: %v", ErrSchemaWrite, s.cacheKey, err)
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrSchemaExists, s.cacheKey)
	}

	s.logger.Info("store.download.start", "cache_key", s.cacheKey)
	body, err := s.remote.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaFetch, err)
	}

	out, err := s.locator.Create(s.cacheKey)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrSchemaWrite, s.cacheKey, err)
	}
	if _, err := out.Write(body); err != nil {
		out.Close()
		return fmt.Errorf("%w: write %s: %v", ErrSchemaWrite, s.cacheKey, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrSchemaWrite, s.cacheKey, err)
	}

	s.logger.Info("store.download.complete", "cache_key", s.cacheKey, "bytes", len(body))
	return nil
}

func (s *service) Get() (map[string]any, bool) {
	if s.cached == nil {
		return nil, false
	}
	return document.CloneMap(s.cached), true
}

func (s *service) Ensure(ctx context.Context) (map[string]any, error) {
	schema, loadErr := s.Load(ctx)
	if loadErr == nil {
		return schema, nil
	}

	s.logger.Warn("store.ensure.fallback", "cache_key", s.cacheKey, "error", loadErr)
	if err := s.Download(ctx); err != nil {
		return nil, fmt.Errorf("%w: load: %v; fetch: %v", ErrSchemaUnavailable, loadErr, err)
	}

	schema, err := s.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load after fetch: %v", ErrSchemaUnavailable, err)
	}
	return schema, nil
}

func (s *service) Validate(ctx context.Context, doc any) (*validation.Result, error) {
	schema, err := s.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	// Compilation happens fresh on every call; only the document is memoized.
	result, err := validation.Evaluate(schema, doc)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("store.validate.complete", "valid", result.Valid(), "issues", len(result.Issues))
	return result, nil
}

func (s *service) ValidateFrom(ctx context.Context, source io.Reader, format document.Format) (*validation.Result, error) {
	doc, err := document.Decode(source, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentParse, err)
	}
	return s.Validate(ctx, doc)
}

func ctxErr(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}

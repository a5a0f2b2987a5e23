// Package schemastore provides a single cached, lazily fetched validation
// schema and the operations to check structured documents against it. The
// schema is read from a local cache when possible and downloaded from its
// canonical URL only as a fallback, so pre-provisioned environments never
// touch the network.
package schemastore

import (
	"context"
	"io"
	"net/http"

	"github.com/goliatone/go-schema-store/internal/cachedir"
	"github.com/goliatone/go-schema-store/internal/document"
	"github.com/goliatone/go-schema-store/internal/logging"
	"github.com/goliatone/go-schema-store/internal/logging/gologger"
	"github.com/goliatone/go-schema-store/internal/remote"
	"github.com/goliatone/go-schema-store/internal/store"
	"github.com/goliatone/go-schema-store/internal/validation"
	"github.com/goliatone/go-schema-store/pkg/interfaces"
)

// appName scopes the default user-level cache directory.
const appName = "schemastore"

// StoreService exports the schema store service contract for consumers of
// the schemastore package.
type StoreService = store.Service

// ValidationIssue exports a single validation failure record.
type ValidationIssue = validation.Issue

// ValidationResult exports the outcome of a validation call.
type ValidationResult = validation.Result

// Format exports the document source formats accepted by ValidateFrom.
type Format = document.Format

// Accepted document source formats.
const (
	FormatJSON        = document.FormatJSON
	FormatYAML        = document.FormatYAML
	FormatFrontMatter = document.FormatFrontMatter
)

// Error taxonomy surfaced by store operations.
var (
	ErrSchemaNotFound    = store.ErrSchemaNotFound
	ErrSchemaParse       = store.ErrSchemaParse
	ErrSchemaExists      = store.ErrSchemaExists
	ErrSchemaFetch       = store.ErrSchemaFetch
	ErrSchemaWrite       = store.ErrSchemaWrite
	ErrSchemaUnavailable = store.ErrSchemaUnavailable
	ErrDocumentParse     = store.ErrDocumentParse
)

// Module represents the top level schema store runtime façade.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	locator  interfaces.CacheLocator
	remote   interfaces.RemoteSource
	client   *http.Client
	store    store.Service
}

// Option overrides a collaborator the module would otherwise construct.
type Option func(*Module)

// WithLoggerProvider injects the logger provider used for module loggers.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.provider = provider
	}
}

// WithCacheLocator overrides the filesystem cache locator.
func WithCacheLocator(locator interfaces.CacheLocator) Option {
	return func(m *Module) {
		m.locator = locator
	}
}

// WithRemoteSource overrides the remote schema source.
func WithRemoteSource(source interfaces.RemoteSource) Option {
	return func(m *Module) {
		m.remote = source
	}
}

// WithHTTPClient overrides the HTTP client backing the default remote source.
func WithHTTPClient(client *http.Client) Option {
	return func(m *Module) {
		m.client = client
	}
}

// New constructs a schema store module using the provided configuration and
// optional collaborator overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if m.provider == nil && cfg.Logging.Enabled {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, err
		}
		m.provider = provider
	}

	if m.locator == nil {
		locatorOpts := []cachedir.Option{}
		if cfg.CacheDir != "" {
			locatorOpts = append(locatorOpts, cachedir.WithRoot(cfg.CacheDir))
		}
		m.locator = cachedir.New(appName, locatorOpts...)
	}

	if m.remote == nil {
		remoteOpts := []remote.Option{
			remote.WithLogger(logging.RemoteLogger(m.provider)),
		}
		if m.client != nil {
			remoteOpts = append(remoteOpts, remote.WithClient(m.client))
		}
		if cfg.HTTPTimeout > 0 {
			remoteOpts = append(remoteOpts, remote.WithTimeout(cfg.HTTPTimeout))
		}
		m.remote = remote.NewHTTPSource(cfg.RemoteURL, remoteOpts...)
	}

	m.store = store.NewService(m.locator, m.remote,
		store.WithLogger(logging.StoreLogger(m.provider)),
		store.WithCacheKey(cfg.CacheKey),
	)
	return m, nil
}

// Store returns the configured schema store service.
func (m *Module) Store() StoreService {
	return m.store
}

// LoggerProvider exposes the module's logger provider for host integrations.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	if m == nil {
		return nil
	}
	return m.provider
}

// Validate checks a decoded document against the schema, making the schema
// available first when needed.
func (m *Module) Validate(ctx context.Context, doc any) (*ValidationResult, error) {
	return m.store.Validate(ctx, doc)
}

// ValidateFrom decodes a document from source and validates it.
func (m *Module) ValidateFrom(ctx context.Context, source io.Reader, format Format) (*ValidationResult, error) {
	return m.store.ValidateFrom(ctx, source, format)
}

package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-schema-store/internal/logging"
	"github.com/goliatone/go-schema-store/pkg/interfaces"
)

// ErrURLRequired reports that the source was constructed without a URL.
var ErrURLRequired = errors.New("remote: schema URL is required")

const defaultTimeout = 30 * time.Second

// HTTPSource retrieves the canonical schema text with a single GET against a
// fixed URL. Any non-2xx status or transport failure is a fetch failure.
type HTTPSource struct {
	url    string
	client *http.Client
	logger interfaces.Logger
}

// Option customises the HTTP source.
type Option func(*HTTPSource)

// WithClient overrides the HTTP client used for retrieval.
func WithClient(client *http.Client) Option {
	return func(s *HTTPSource) {
		if client != nil {
			s.client = client
		}
	}
}

// WithTimeout overrides the default request timeout on the owned client.
func WithTimeout(timeout time.Duration) Option {
	return func(s *HTTPSource) {
		if timeout > 0 {
			s.client.Timeout = timeout
		}
	}
}

// WithLogger injects the logger used during retrieval. Defaults to no-op.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *HTTPSource) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHTTPSource constructs a source for the given canonical schema URL.
func NewHTTPSource(url string, opts ...Option) *HTTPSource {
	s := &HTTPSource{
		url:    strings.TrimSpace(url),
		client: &http.Client{Timeout: defaultTimeout},
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Fetch downloads the schema body. The returned bytes are the verbatim
// response payload.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	if s.url == "" {
		return nil, ErrURLRequired
	}
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("remote: build request for %s: %w", s.url, err)
	}

	s.logger.Debug("remote.fetch.start", "url", s.url)
	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote: get %s: %w", s.url, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("remote: get %s: unexpected status %s", s.url, res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("remote: read %s body: %w", s.url, err)
	}

	s.logger.Info("remote.fetch.complete", "url", s.url, "bytes", len(body))
	return body, nil
}

var _ interfaces.RemoteSource = (*HTTPSource)(nil)

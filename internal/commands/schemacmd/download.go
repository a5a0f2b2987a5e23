package schemacmd

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-schema-store/internal/commands"
	"github.com/goliatone/go-schema-store/internal/logging"
	"github.com/goliatone/go-schema-store/internal/store"
	"github.com/goliatone/go-schema-store/pkg/interfaces"
)

const downloadSchemaMessageType = "schema.store.download"

// DownloadSchemaCommand fetches the schema from the remote source and
// persists it to the cache. It fails when the cache is already populated.
type DownloadSchemaCommand struct{}

// Type implements command.Message.
func (DownloadSchemaCommand) Type() string { return downloadSchemaMessageType }

// DownloadSchemaHandler persists the remote schema to the cache location.
type DownloadSchemaHandler struct {
	service store.Service
	logger  interfaces.Logger
	timeout time.Duration
}

// DownloadSchemaOption customises the download handler.
type DownloadSchemaOption func(*DownloadSchemaHandler)

// DownloadSchemaWithTimeout overrides the default execution timeout.
func DownloadSchemaWithTimeout(timeout time.Duration) DownloadSchemaOption {
	return func(h *DownloadSchemaHandler) {
		h.timeout = timeout
	}
}

// NewDownloadSchemaHandler constructs a handler wired to the provided store service.
func NewDownloadSchemaHandler(service store.Service, logger interfaces.Logger, opts ...DownloadSchemaOption) *DownloadSchemaHandler {
	handler := &DownloadSchemaHandler{
		service: service,
		logger:  commands.EnsureLogger(logger),
		timeout: commands.DefaultCommandTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(handler)
		}
	}
	return handler
}

// Execute satisfies command.Commander[DownloadSchemaCommand].
func (h *DownloadSchemaHandler) Execute(ctx context.Context, msg DownloadSchemaCommand) error {
	if err := commands.WrapValidationError(command.ValidateMessage(msg)); err != nil {
		return err
	}
	ctx = commands.EnsureContext(ctx)
	ctx, cancel := commands.WithCommandTimeout(ctx, h.timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return commands.WrapContextError(err)
	}

	if err := h.service.Download(ctx); err != nil {
		return commands.WrapExecuteError(err)
	}

	logging.WithFields(h.logger, map[string]any{
		"operation": "schema.store.download",
	}).Info("schema.command.downloaded")
	return nil
}

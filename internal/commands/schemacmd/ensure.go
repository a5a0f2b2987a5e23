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

const ensureSchemaMessageType = "schema.store.ensure"

// EnsureSchemaCommand warms the schema cache, downloading only when the
// cached copy cannot be loaded.
type EnsureSchemaCommand struct{}

// Type implements command.Message.
func (EnsureSchemaCommand) Type() string { return ensureSchemaMessageType }

// EnsureSchemaHandler makes the schema available on disk and in memory.
type EnsureSchemaHandler struct {
	service store.Service
	logger  interfaces.Logger
	timeout time.Duration
}

// EnsureSchemaOption customises the ensure handler.
type EnsureSchemaOption func(*EnsureSchemaHandler)

// EnsureSchemaWithTimeout overrides the default execution timeout.
func EnsureSchemaWithTimeout(timeout time.Duration) EnsureSchemaOption {
	return func(h *EnsureSchemaHandler) {
		h.timeout = timeout
	}
}

// NewEnsureSchemaHandler constructs a handler wired to the provided store service.
func NewEnsureSchemaHandler(service store.Service, logger interfaces.Logger, opts ...EnsureSchemaOption) *EnsureSchemaHandler {
	handler := &EnsureSchemaHandler{
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

// Execute satisfies command.Commander[EnsureSchemaCommand].
func (h *EnsureSchemaHandler) Execute(ctx context.Context, msg EnsureSchemaCommand) error {
	if err := commands.WrapValidationError(command.ValidateMessage(msg)); err != nil {
		return err
	}
	ctx = commands.EnsureContext(ctx)
	ctx, cancel := commands.WithCommandTimeout(ctx, h.timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return commands.WrapContextError(err)
	}

	schema, err := h.service.Ensure(ctx)
	if err != nil {
		return commands.WrapExecuteError(err)
	}

	logging.WithFields(h.logger, map[string]any{
		"operation":   "schema.store.ensure",
		"schema_keys": len(schema),
	}).Info("schema.command.ensured")
	return nil
}

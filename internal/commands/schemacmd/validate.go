package schemacmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-schema-store/internal/commands"
	"github.com/goliatone/go-schema-store/internal/document"
	"github.com/goliatone/go-schema-store/internal/logging"
	"github.com/goliatone/go-schema-store/internal/store"
	schemavalidation "github.com/goliatone/go-schema-store/internal/validation"
	"github.com/goliatone/go-schema-store/pkg/interfaces"
)

const validateDocumentMessageType = "schema.document.validate"

// ErrDocumentNotConformant reports a well-formed document that violates the schema.
var ErrDocumentNotConformant = errors.New("schemacmd: document does not conform to schema")

// ValidateDocumentCommand checks a document file against the cached schema.
type ValidateDocumentCommand struct {
	Path   string `json:"path"`
	Format string `json:"format,omitempty"`
}

// Type implements command.Message.
func (ValidateDocumentCommand) Type() string { return validateDocumentMessageType }

// Validate ensures the command payload names a readable document source.
func (m ValidateDocumentCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.Path) == "" {
		errs["path"] = validation.NewError("schema.document.validate.path_required", "path must reference the document to validate")
	}
	if format := strings.TrimSpace(m.Format); format != "" {
		switch document.Format(format) {
		case document.FormatJSON, document.FormatYAML, document.FormatFrontMatter:
		default:
			errs["format"] = validation.NewError("schema.document.validate.format_unknown", "format must be json, yaml, or frontmatter")
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ResultSink receives the validation outcome for a processed command.
type ResultSink func(msg ValidateDocumentCommand, result *schemavalidation.Result)

// ValidateDocumentHandler decodes a document file and validates it.
type ValidateDocumentHandler struct {
	service store.Service
	logger  interfaces.Logger
	timeout time.Duration
	sink    ResultSink
}

// ValidateDocumentOption customises the validate handler.
type ValidateDocumentOption func(*ValidateDocumentHandler)

// ValidateDocumentWithTimeout overrides the default execution timeout.
func ValidateDocumentWithTimeout(timeout time.Duration) ValidateDocumentOption {
	return func(h *ValidateDocumentHandler) {
		h.timeout = timeout
	}
}

// ValidateDocumentWithResultSink registers a callback that receives the
// validation result, conformant or not, before the handler returns.
func ValidateDocumentWithResultSink(sink ResultSink) ValidateDocumentOption {
	return func(h *ValidateDocumentHandler) {
		h.sink = sink
	}
}

// NewValidateDocumentHandler constructs a handler wired to the provided store service.
func NewValidateDocumentHandler(service store.Service, logger interfaces.Logger, opts ...ValidateDocumentOption) *ValidateDocumentHandler {
	handler := &ValidateDocumentHandler{
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

// Execute satisfies command.Commander[ValidateDocumentCommand].
func (h *ValidateDocumentHandler) Execute(ctx context.Context, msg ValidateDocumentCommand) error {
	if err := commands.WrapValidationError(command.ValidateMessage(msg)); err != nil {
		return err
	}
	ctx = commands.EnsureContext(ctx)
	ctx, cancel := commands.WithCommandTimeout(ctx, h.timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return commands.WrapContextError(err)
	}

	format := document.Format(strings.TrimSpace(msg.Format))
	if format == "" {
		format = document.DetectFormat(msg.Path)
	}

	file, err := os.Open(msg.Path)
	if err != nil {
		return commands.WrapExecuteError(fmt.Errorf("open document %s: %w", msg.Path, err))
	}
	defer file.Close()

	result, err := h.service.ValidateFrom(ctx, file, format)
	if err != nil {
		return commands.WrapExecuteError(err)
	}

	if h.sink != nil {
		h.sink(msg, result)
	}

	logger := logging.WithFields(h.logger, map[string]any{
		"operation": "schema.document.validate",
		"path":      msg.Path,
		"format":    string(format),
		"issues":    len(result.Issues),
	})
	if !result.Valid() {
		logger.Warn("schema.command.document_rejected")
		return commands.WrapExecuteError(fmt.Errorf("%w: %s", ErrDocumentNotConformant, result))
	}

	logger.Info("schema.command.document_accepted")
	return nil
}

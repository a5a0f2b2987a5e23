package logging_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-schema-store/internal/logging"
	"github.com/goliatone/go-schema-store/pkg/interfaces"
)

type recordingLogger struct {
	fields map[string]any
}

func (l *recordingLogger) Trace(string, ...any)                          {}
func (l *recordingLogger) Debug(string, ...any)                          {}
func (l *recordingLogger) Info(string, ...any)                           {}
func (l *recordingLogger) Warn(string, ...any)                           {}
func (l *recordingLogger) Error(string, ...any)                          {}
func (l *recordingLogger) Fatal(string, ...any)                          {}
func (l *recordingLogger) WithContext(context.Context) interfaces.Logger { return l }
func (l *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	l.fields = fields
	return l
}

type stubProvider struct {
	logger interfaces.Logger
	names  []string
}

func (p *stubProvider) GetLogger(name string) interfaces.Logger {
	p.names = append(p.names, name)
	return p.logger
}

func TestModuleLoggerDefaultsToNoOp(t *testing.T) {
	logger := logging.ModuleLogger(nil, "schemastore.store")
	if logger == nil {
		t.Fatal("expected a logger even without a provider")
	}
	logger.Info("safe to call")
}

func TestModuleLoggerAttachesModuleField(t *testing.T) {
	recorder := &recordingLogger{}
	provider := &stubProvider{logger: recorder}

	logging.StoreLogger(provider)

	if len(provider.names) != 1 || provider.names[0] != "schemastore.store" {
		t.Fatalf("unexpected requested names %v", provider.names)
	}
	if recorder.fields["module"] != "schemastore.store" {
		t.Fatalf("expected module field, got %v", recorder.fields)
	}
}

func TestModuleLoggerDefaultsModuleName(t *testing.T) {
	recorder := &recordingLogger{}
	provider := &stubProvider{logger: recorder}

	logging.ModuleLogger(provider, "")

	if recorder.fields["module"] != "schemastore" {
		t.Fatalf("expected root module field, got %v", recorder.fields)
	}
}

func TestWithFieldsSkipsEmptyInput(t *testing.T) {
	recorder := &recordingLogger{}
	if logger := logging.WithFields(recorder, nil); logger != recorder {
		t.Fatal("expected logger passthrough for empty fields")
	}
	if recorder.fields != nil {
		t.Fatalf("expected no fields applied, got %v", recorder.fields)
	}
}

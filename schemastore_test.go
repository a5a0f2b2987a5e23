package schemastore_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	schemastore "github.com/goliatone/go-schema-store"
)

func newSchemaServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func newModule(t *testing.T, remoteURL string) (*schemastore.Module, string) {
	t.Helper()
	cacheDir := t.TempDir()

	cfg := schemastore.DefaultConfig()
	cfg.RemoteURL = remoteURL
	cfg.CacheDir = cacheDir

	module, err := schemastore.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	return module, filepath.Join(cacheDir, "schema.json")
}

func TestModuleColdCacheEndToEnd(t *testing.T) {
	server := newSchemaServer(t, `{"type":"object","required":["name"]}`)
	module, cachePath := newModule(t, server.URL)
	ctx := context.Background()

	result, err := module.Validate(ctx, map[string]any{"name": "a"})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !result.Valid() {
		t.Fatalf("expected valid document, got %v", result.Issues)
	}

	data, err := os.ReadFile(cachePath)
	if err != nil {
		t.Fatalf("expected populated cache file: %v", err)
	}
	if string(data) != `{"type":"object","required":["name"]}` {
		t.Fatalf("expected verbatim cache content, got %q", data)
	}

	result, err = module.Validate(ctx, map[string]any{})
	if err != nil {
		t.Fatalf("validate empty document: %v", err)
	}
	if len(result.Issues) != 1 {
		t.Fatalf("expected one issue, got %d", len(result.Issues))
	}
	if !strings.Contains(result.Issues[0].Message, "name") {
		t.Fatalf("expected missing-property issue, got %q", result.Issues[0].Message)
	}
}

func TestModuleWarmCacheNeverTouchesNetwork(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte(`{"type":"object"}`))
	}))
	t.Cleanup(server.Close)

	module, cachePath := newModule(t, server.URL)
	if err := os.WriteFile(cachePath, []byte(`{"type":"object"}`), 0o644); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	if _, err := module.Validate(context.Background(), map[string]any{}); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if requests != 0 {
		t.Fatalf("expected no network requests, got %d", requests)
	}
}

func TestModuleValidateFromYAMLSource(t *testing.T) {
	server := newSchemaServer(t, `{"type":"object","required":["name"]}`)
	module, _ := newModule(t, server.URL)

	result, err := module.ValidateFrom(context.Background(), strings.NewReader("name: a\n"), schemastore.FormatYAML)
	if err != nil {
		t.Fatalf("validate from yaml: %v", err)
	}
	if !result.Valid() {
		t.Fatalf("expected valid document, got %v", result.Issues)
	}
}

func TestModuleValidateFromMalformedSource(t *testing.T) {
	server := newSchemaServer(t, `{"type":"object"}`)
	module, _ := newModule(t, server.URL)

	_, err := module.ValidateFrom(context.Background(), strings.NewReader("not json"), schemastore.FormatJSON)
	if !errors.Is(err, schemastore.ErrDocumentParse) {
		t.Fatalf("expected ErrDocumentParse, got %v", err)
	}
}

func TestModuleCorruptCacheStaysBroken(t *testing.T) {
	server := newSchemaServer(t, `{"type":"object"}`)
	module, cachePath := newModule(t, server.URL)
	if err := os.WriteFile(cachePath, []byte("not json"), 0o644); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	_, err := module.Validate(context.Background(), map[string]any{})
	if !errors.Is(err, schemastore.ErrSchemaUnavailable) {
		t.Fatalf("expected ErrSchemaUnavailable, got %v", err)
	}

	data, readErr := os.ReadFile(cachePath)
	if readErr != nil {
		t.Fatalf("read cache: %v", readErr)
	}
	if string(data) != "not json" {
		t.Fatalf("expected corrupt cache untouched, got %q", data)
	}
}

func TestModuleUnreachableRemote(t *testing.T) {
	server := newSchemaServer(t, "")
	url := server.URL
	server.Close()

	module, _ := newModule(t, url)
	_, err := module.Validate(context.Background(), map[string]any{})
	if !errors.Is(err, schemastore.ErrSchemaUnavailable) {
		t.Fatalf("expected ErrSchemaUnavailable, got %v", err)
	}
}

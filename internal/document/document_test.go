package document_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/goliatone/go-schema-store/internal/document"
)

func TestDetectFormat(t *testing.T) {
	cases := map[string]document.Format{
		"export.json":    document.FormatJSON,
		"export":         document.FormatJSON,
		"values.yaml":    document.FormatYAML,
		"values.yml":     document.FormatYAML,
		"post.md":        document.FormatFrontMatter,
		"post.markdown":  document.FormatFrontMatter,
		"weird.JSON":     document.FormatJSON,
		"weird.YAML":     document.FormatYAML,
		" spaced.yml ":   document.FormatYAML,
		"no-extension.d": document.FormatJSON,
	}
	for path, want := range cases {
		if got := document.DetectFormat(path); got != want {
			t.Fatalf("detect %q: expected %s, got %s", path, want, got)
		}
	}
}

func TestDecodeJSON(t *testing.T) {
	doc, err := document.Decode(strings.NewReader(`{"name":"a","age":3}`), document.FormatJSON)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{"name": "a", "age": float64(3)}
	if !reflect.DeepEqual(doc, want) {
		t.Fatalf("unexpected document %#v", doc)
	}
}

func TestDecodeYAMLNormalizesToJSONTypes(t *testing.T) {
	source := "name: a\nage: 3\ntags:\n  - x\n  - y\n"
	doc, err := document.Decode(strings.NewReader(source), document.FormatYAML)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{
		"name": "a",
		"age":  float64(3),
		"tags": []any{"x", "y"},
	}
	if !reflect.DeepEqual(doc, want) {
		t.Fatalf("unexpected document %#v", doc)
	}
}

func TestDecodeFrontMatter(t *testing.T) {
	source := "---\nname: a\nage: 3\n---\n# Heading\n\nBody text.\n"
	doc, err := document.Decode(strings.NewReader(source), document.FormatFrontMatter)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{"name": "a", "age": float64(3)}
	if !reflect.DeepEqual(doc, want) {
		t.Fatalf("unexpected document %#v", doc)
	}
}

func TestDecodeFrontMatterNestedMapping(t *testing.T) {
	source := "---\nname: a\nmeta:\n  author: b\n  revisions:\n    - draft\n---\nBody.\n"
	doc, err := document.Decode(strings.NewReader(source), document.FormatFrontMatter)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{
		"name": "a",
		"meta": map[string]any{
			"author":    "b",
			"revisions": []any{"draft"},
		},
	}
	if !reflect.DeepEqual(doc, want) {
		t.Fatalf("unexpected document %#v", doc)
	}
}

func TestDecodeMalformedSource(t *testing.T) {
	if _, err := document.Decode(strings.NewReader("not json"), document.FormatJSON); !errors.Is(err, document.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if _, err := document.Decode(strings.NewReader(":\n  - ["), document.FormatYAML); !errors.Is(err, document.ErrMalformed) {
		t.Fatalf("expected ErrMalformed for yaml, got %v", err)
	}
}

func TestDecodeUnknownFormat(t *testing.T) {
	if _, err := document.Decode(strings.NewReader("{}"), document.Format("xml")); !errors.Is(err, document.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestCloneMapIsIndependent(t *testing.T) {
	original := map[string]any{
		"nested": map[string]any{"list": []any{"a"}},
	}
	clone := document.CloneMap(original)
	clone["nested"].(map[string]any)["list"].([]any)[0] = "changed"

	if original["nested"].(map[string]any)["list"].([]any)[0] != "a" {
		t.Fatal("expected original to be unchanged")
	}
}

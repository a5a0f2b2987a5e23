package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMalformed reports a byte source that does not contain a
	// well-formed structured document.
	ErrMalformed = errors.New("document: malformed document")
	// ErrUnknownFormat reports an unrecognised source format.
	ErrUnknownFormat = errors.New("document: unknown format")
)

// Format identifies how a byte source is decoded into a document.
type Format string

const (
	// FormatJSON decodes the source as a JSON document.
	FormatJSON Format = "json"
	// FormatYAML decodes the source as a YAML document.
	FormatYAML Format = "yaml"
	// FormatFrontMatter extracts markdown front matter and treats it as the
	// document under validation.
	FormatFrontMatter Format = "frontmatter"
)

// DetectFormat maps a file path to a decode format, defaulting to JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(path))) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".md", ".markdown":
		return FormatFrontMatter
	default:
		return FormatJSON
	}
}

// Decode reads a structured document from source. Decoded YAML and front
// matter are normalized to JSON value types (map[string]any, []any, float64,
// string, bool, nil) so every downstream consumer sees one shape.
func Decode(source io.Reader, format Format) (any, error) {
	switch format {
	case FormatJSON, "":
		var doc any
		dec := json.NewDecoder(source)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: parse json: %v", ErrMalformed, err)
		}
		return doc, nil
	case FormatYAML:
		data, err := io.ReadAll(source)
		if err != nil {
			return nil, fmt.Errorf("document: read source: %w", err)
		}
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: parse yaml: %v", ErrMalformed, err)
		}
		return normalize(doc)
	case FormatFrontMatter:
		var matter map[string]any
		if _, err := frontmatter.Parse(source, &matter); err != nil {
			return nil, fmt.Errorf("%w: parse front matter: %v", ErrMalformed, err)
		}
		return normalize(matter)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// normalize round-trips a decoded value through JSON so YAML-native types
// (ints, timestamps) collapse into the JSON type set the schema evaluator
// expects. Keys are stringified first because yaml.v2 decoders hand nested
// mappings back as map[interface{}]interface{}, which JSON cannot encode.
func normalize(doc any) (any, error) {
	encoded, err := json.Marshal(stringifyKeys(doc))
	if err != nil {
		return nil, fmt.Errorf("%w: normalize: %v", ErrMalformed, err)
	}
	var normalized any
	if err := json.Unmarshal(encoded, &normalized); err != nil {
		return nil, fmt.Errorf("%w: normalize: %v", ErrMalformed, err)
	}
	return normalized, nil
}

func stringifyKeys(value any) any {
	switch typed := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[fmt.Sprint(key)] = stringifyKeys(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = stringifyKeys(item)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = stringifyKeys(item)
		}
		return out
	default:
		return value
	}
}

// CloneMap deep-copies a document map so callers can hand out copies
// without sharing mutable state.
func CloneMap(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		switch typed := value.(type) {
		case map[string]any:
			out[key] = CloneMap(typed)
		case []any:
			out[key] = CloneSlice(typed)
		default:
			out[key] = value
		}
	}
	return out
}

// CloneSlice deep-copies a document slice.
func CloneSlice(input []any) []any {
	if input == nil {
		return nil
	}
	out := make([]any, len(input))
	for i, value := range input {
		switch typed := value.(type) {
		case map[string]any:
			out[i] = CloneMap(typed)
		case []any:
			out[i] = CloneSlice(typed)
		default:
			out[i] = value
		}
	}
	return out
}

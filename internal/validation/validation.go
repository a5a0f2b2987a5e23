package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrSchemaInvalid reports a schema document that cannot be compiled.
var ErrSchemaInvalid = errors.New("validation: schema invalid")

// Issue captures a single validation failure. Location is a JSON pointer
// into the validated document; Message is human-readable diagnostic text.
// Callers should treat both as opaque beyond display.
type Issue struct {
	Location string
	Message  string
}

// Result is the outcome of evaluating a document against a schema. An empty
// issue list means the document conforms.
type Result struct {
	Issues []Issue
}

// Valid reports whether the evaluated document conformed to the schema.
func (r *Result) Valid() bool {
	return r == nil || len(r.Issues) == 0
}

func (r *Result) String() string {
	if r.Valid() {
		return "valid"
	}
	parts := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

// Evaluate compiles the schema document and checks the given document
// against it. A non-conformant document is not an error: the returned
// Result carries the ordered issues. Evaluate only fails when the schema
// itself cannot be compiled.
func Evaluate(schema map[string]any, document any) (*Result, error) {
	compiled, err := Compile(schema)
	if err != nil {
		return nil, err
	}

	if err := compiled.Validate(document); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return &Result{Issues: collectIssues(validationErr)}, nil
		}
		return &Result{Issues: []Issue{{Message: err.Error()}}}, nil
	}
	return &Result{}, nil
}

// Compile turns a schema document into an evaluator. Compilation is
// performed fresh on every call; memoization is left to callers.
func Compile(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return compiled, nil
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	if err == nil {
		return nil
	}
	issues := []Issue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}

package commands_test

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-schema-store/internal/commands"
)

func TestWrapValidationErrorNilPassthrough(t *testing.T) {
	if err := commands.WrapValidationError(nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestWrapValidationErrorCategory(t *testing.T) {
	err := commands.WrapValidationError(errors.New("bad payload"))
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestWrapValidationErrorKeepsWrapped(t *testing.T) {
	original := commands.WrapExecuteError(errors.New("boom"))
	if wrapped := commands.WrapValidationError(original); wrapped != original {
		t.Fatalf("expected already-wrapped error to pass through, got %v", wrapped)
	}
}

func TestWrapContextErrorVariants(t *testing.T) {
	cases := []error{context.Canceled, context.DeadlineExceeded, errors.New("other")}
	for _, cause := range cases {
		err := commands.WrapContextError(cause)
		if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
			t.Fatalf("expected command category for %v, got %v", cause, err)
		}
	}
}

func TestWrapExecuteErrorCategory(t *testing.T) {
	err := commands.WrapExecuteError(errors.New("boom"))
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

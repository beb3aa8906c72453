package client

import (
	"errors"
	"testing"
)

func TestClassifyNilError(t *testing.T) {
	if got := ClassifyError(nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestClassifyValidationErrorSurfacesFieldMessage(t *testing.T) {
	err := &APIError{
		Status: 422,
		Body:   `{"errors":{"quantity":["Cannot add loss - exceeds available stock"]}}`,
	}

	if got := ClassifyError(err); got != "Cannot add loss - exceeds available stock" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestClassifyValidationErrorPicksFirstFieldDeterministically(t *testing.T) {
	err := &APIError{
		Status: 422,
		Body:   `{"errors":{"name":["name is required"],"code":["code is required"]}}`,
	}

	// Fields visit in name order, so "code" wins.
	if got := ClassifyError(err); got != "code is required" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestClassifyFlattenedErrorString(t *testing.T) {
	err := errors.New(`422: {"errors":{"quantity":["Cannot remove - exceeds available stock"]}}`)

	if got := ClassifyError(err); got != "Cannot remove - exceeds available stock" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestClassifyUnauthorized(t *testing.T) {
	err := &APIError{Status: 401, Body: `{"error":"invalid token"}`}

	if got := ClassifyError(err); got != SessionExpiredMessage {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestClassifySessionKeywordInPlainError(t *testing.T) {
	err := errors.New("request failed: session expired")

	if got := ClassifyError(err); got != SessionExpiredMessage {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestClassifyConflict(t *testing.T) {
	err := &APIError{Status: 409, Body: `{"error":"conflict"}`}

	if got := ClassifyError(err); got != "This item is still referenced elsewhere." {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestClassifyUnknownFallsBackToGeneric(t *testing.T) {
	cases := []error{
		&APIError{Status: 500, Body: "boom"},
		errors.New("dial tcp: connection refused"),
		&APIError{Status: 422, Body: "not even json"},
	}
	for _, err := range cases {
		if got := ClassifyError(err); got != GenericErrorMessage {
			t.Errorf("ClassifyError(%v) = %q, want generic", err, got)
		}
	}
}

package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue is one mismatch between a payload and its shape.
type Issue struct {
	Path     string `json:"path"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: expected %s, got %s", i.Path, i.Expected, i.Actual)
}

// ValidationError reports a payload that does not match the expected shape.
// It signals a contract mismatch with the server and must not be retried.
type ValidationError struct {
	Resource string
	Issues   []Issue
}

func (e *ValidationError) Error() string {
	resource := e.Resource
	if resource == "" {
		resource = "response"
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return fmt.Sprintf("invalid %s data: %s", resource, strings.Join(parts, "; "))
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Invalid builds a ValidationError for a single issue.
func Invalid(resource, path, expected, actual string) *ValidationError {
	return &ValidationError{
		Resource: resource,
		Issues:   []Issue{{Path: displayPath(path), Expected: expected, Actual: actual}},
	}
}

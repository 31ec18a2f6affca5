package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/vietddude/tigscan/internal/schema"
)

// Error codes set by the client itself rather than the server.
const (
	CodeTimeout = "TIMEOUT"
	CodeNetwork = "NETWORK_ERROR"
)

// Error is a failed API request. Status is the HTTP status for server
// errors, 408 for attempt timeouts and 500 for network failures.
type Error struct {
	Status  int
	Code    string
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func timeoutError(err error) *Error {
	return &Error{Status: http.StatusRequestTimeout, Code: CodeTimeout, Message: "Request timeout", Err: err}
}

func networkError(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeNetwork, Message: err.Error(), Err: err}
}

// responseError builds an Error from a non-2xx response, reading the JSON
// error body when there is one.
func responseError(status int, body []byte) *Error {
	e := &Error{Status: status}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Code    any    `json:"code"`
		Details any    `json:"details"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		e.Message = "An error occurred"
		return e
	}

	switch {
	case payload.Message != "":
		e.Message = payload.Message
	case payload.Error != "":
		e.Message = payload.Error
	default:
		e.Message = fmt.Sprintf("HTTP error! status: %d", status)
	}
	if payload.Code != nil {
		e.Code = fmt.Sprint(payload.Code)
	}
	e.Details = payload.Details
	return e
}

// ErrorAction determines how to handle an error.
type ErrorAction int

const (
	ActionRetry ErrorAction = iota
	ActionFatal
)

func (a ErrorAction) String() string {
	if a == ActionRetry {
		return "retry"
	}
	return "fatal"
}

// Classify determines whether a failed attempt may be retried.
// Rate limits, server errors, timeouts and network failures are transient.
// Other 4xx responses, validation failures and cancellation are not.
func Classify(err error) ErrorAction {
	if err == nil {
		return ActionFatal
	}
	if errors.Is(err, context.Canceled) || schema.IsValidationError(err) {
		return ActionFatal
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == CodeTimeout, apiErr.Code == CodeNetwork:
			return ActionRetry
		case apiErr.Status == http.StatusTooManyRequests:
			return ActionRetry
		case apiErr.Status >= 500:
			return ActionRetry
		default:
			return ActionFatal
		}
	}

	return ActionRetry
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// IsTimeout reports whether err is an attempt timeout.
func IsTimeout(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == CodeTimeout
}

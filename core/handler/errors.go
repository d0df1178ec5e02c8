package handler

import (
	"errors"
	"net/http"
)

var (
	ErrNoRenderer              = errors.New("no renderer configured")
	ErrHijacked                = errors.New("connection already hijacked")
	ErrNextCalledMultipleTimes = errors.New("next() called multiple times")
)

// HTTPError is an error that carries the status the response should have.
type HTTPError struct {
	Status  int
	Message string
}

// NewHTTPError creates an HTTPError. An empty message falls back to the status text.
func NewHTTPError(status int, message string) *HTTPError {
	if message == "" {
		message = http.StatusText(status)
	}
	return &HTTPError{Status: status, Message: message}
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status associated with the error.
func (e *HTTPError) StatusCode() int {
	return e.Status
}

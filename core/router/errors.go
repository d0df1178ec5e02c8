package router

import (
	"fmt"

	"github.com/dmitrymomot/dws/core/handler"
)

// ErrNextCalledMultipleTimes is returned when a handler invokes its continuation twice.
var ErrNextCalledMultipleTimes = handler.ErrNextCalledMultipleTimes

// statusCode is implemented by errors that carry an HTTP status,
// such as *handler.HTTPError.
type statusCode interface {
	StatusCode() int
}

// PanicError interface allows error handlers to detect and handle panics.
// When a handler panics, the dispatcher recovers at that step and wraps the value
// in an error that implements this interface.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

// Unwrap allows errors.Is/As to work with wrapped panics.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}

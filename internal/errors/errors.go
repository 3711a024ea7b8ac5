// Package errors holds the domain error taxonomy shared by the services and
// the HTTP boundary.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError is a business failure identified by a stable code.
type DomainError struct {
	Code    string
	Message string
	Status  int
	// Retryable marks transient failures the caller may try again.
	Retryable bool
	cause     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is matches any DomainError carrying the same code, so sentinels keep
// working after WithMessage or Wrap.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithMessage returns a copy of e with a specific message.
func (e *DomainError) WithMessage(format string, args ...interface{}) *DomainError {
	cp := *e
	cp.Message = fmt.Sprintf(format, args...)
	return &cp
}

// Wrap returns a copy of e that records cause.
func (e *DomainError) Wrap(cause error) *DomainError {
	cp := *e
	cp.cause = cause
	return &cp
}

// HTTPStatus maps err to a response status. Unknown errors are 500.
func HTTPStatus(err error) int {
	var de *DomainError
	if errors.As(err, &de) && de.Status != 0 {
		return de.Status
	}
	return http.StatusInternalServerError
}

// Code returns the domain code of err, or "INTERNAL" for foreign errors.
func Code(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return "INTERNAL"
}

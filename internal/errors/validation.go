package errors

import "net/http"

var ErrValidation = &DomainError{
	Code:    "VALIDATION_FAILED",
	Message: "validation failed",
	Status:  http.StatusBadRequest,
}

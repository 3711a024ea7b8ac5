package errors

import "net/http"

var (
	ErrDuplicateAccount = &DomainError{
		Code:    "DUPLICATE_ACCOUNT",
		Message: "account already exists",
		Status:  http.StatusBadRequest,
	}
	ErrAccountNotFound = &DomainError{
		Code:    "ACCOUNT_NOT_FOUND",
		Message: "account not found",
		Status:  http.StatusNotFound,
	}
	ErrInvalidAccount = &DomainError{
		Code:    "INVALID_ACCOUNT",
		Message: "invalid account",
		Status:  http.StatusBadRequest,
	}
)

package errors

import "net/http"

const ServerBusyMessage = "Server Busy , please try again"

var (
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "transfer amount must be positive",
		Status:  http.StatusBadRequest,
	}
	ErrInsufficientFunds = &DomainError{
		Code:    "INSUFFICIENT_FUNDS",
		Message: "insufficient funds",
		Status:  http.StatusBadRequest,
	}
	ErrSameAccount = &DomainError{
		Code:    "SAME_ACCOUNT",
		Message: "cannot transfer to the same account",
		Status:  http.StatusBadRequest,
	}
	ErrServerBusy = &DomainError{
		Code:      "SERVER_BUSY",
		Message:   ServerBusyMessage,
		Status:    http.StatusServiceUnavailable,
		Retryable: true,
	}
)

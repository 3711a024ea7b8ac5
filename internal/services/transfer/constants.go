package transfer

import "time"

// Notification messages, parameterised by the transferred amount.
const (
	DebitNotification  = "Amount debited %s"
	CreditNotification = "Amount Credited %s"
)

const DefaultLockTimeout = 3000 * time.Millisecond

// Lock ordering strategies.
const (
	// OrderByAccountID locks the lexicographically smaller account id first,
	// regardless of transfer direction.
	OrderByAccountID = "ordered"
	// OrderFromTo locks the source account first, then the destination.
	// Opposite-direction transfers on the same pair can then only resolve
	// through a lock timeout.
	OrderFromTo = "from-to"
)

// Outcomes reported to MetricsCollector.
const (
	OutcomeSuccess           = "success"
	OutcomeNotFound          = "not_found"
	OutcomeInvalidAmount     = "invalid_amount"
	OutcomeSameAccount       = "same_account"
	OutcomeInsufficientFunds = "insufficient_funds"
	OutcomeServerBusy        = "server_busy"
	OutcomeFailed            = "failed"
)

package repositories

import (
	"orus-accounts/internal/lock"
	"orus-accounts/internal/models"

	"github.com/shopspring/decimal"
)

// AccountRepository owns the id -> account mapping.
//
// Credit and Debit are not synchronized against each other: callers must hold
// the account's lock (see Lock) for the duration of the read-modify-write.
type AccountRepository interface {
	// Create inserts the account unless the id is already taken.
	Create(account *models.Account) error
	// Get returns a snapshot of the account.
	Get(accountID string) (*models.Account, error)
	// Lock returns the exclusive lock guarding the account's balance.
	Lock(accountID string) (*lock.Lock, error)
	// Credit adds amount and returns the new balance.
	Credit(accountID string, amount decimal.Decimal) (decimal.Decimal, error)
	// Debit subtracts amount and returns the new balance. It never lets the
	// balance go negative.
	Debit(accountID string, amount decimal.Decimal) (decimal.Decimal, error)
	// Clear removes every account. Intended for resets between tests.
	Clear()
	Count() int
}

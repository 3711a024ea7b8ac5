package models

import (
	"github.com/shopspring/decimal"
)

// Account is the externally visible state of an account.
// The lock guarding it lives in the repository, never on this value.
type Account struct {
	AccountID string          `json:"accountId"`
	Balance   decimal.Decimal `json:"balance"`
}

// NewAccount creates an account value with the given opening balance.
func NewAccount(accountID string, balance decimal.Decimal) *Account {
	return &Account{
		AccountID: accountID,
		Balance:   balance,
	}
}

func init() {
	// Balances go over the wire as JSON numbers, e.g. {"balance":123.45}.
	decimal.MarshalJSONWithoutQuotes = true
}

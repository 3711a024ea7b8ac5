package models

import "github.com/shopspring/decimal"

// CreateAccountRequest is the body of an account creation call. Pointers
// distinguish missing fields from zero values.
type CreateAccountRequest struct {
	AccountID *string          `json:"accountId"`
	Balance   *decimal.Decimal `json:"balance"`
}

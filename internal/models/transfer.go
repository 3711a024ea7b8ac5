package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferRequest moves Amount from AccountFromID to AccountToID.
type TransferRequest struct {
	AccountFromID string          `json:"accountFromId"`
	AccountToID   string          `json:"accountToId"`
	Amount        decimal.Decimal `json:"amount"`
}

// TransferResult describes a completed transfer.
// Balances are the ones observed while both account locks were held.
type TransferResult struct {
	TransferID    string          `json:"transferId"`
	AccountFromID string          `json:"accountFromId"`
	AccountToID   string          `json:"accountToId"`
	Amount        decimal.Decimal `json:"amount"`
	FromBalance   decimal.Decimal `json:"fromBalance"`
	ToBalance     decimal.Decimal `json:"toBalance"`
	CompletedAt   time.Time       `json:"completedAt"`
}

package validation

import (
	"orus-accounts/internal/models"
)

// ValidateCreateAccount checks an account creation request.
func ValidateCreateAccount(req models.CreateAccountRequest) error {
	v := New()
	v.RequiredString("accountId", req.AccountID)
	v.RequiredDecimal("balance", req.Balance)
	if req.Balance != nil {
		v.Check(!req.Balance.IsNegative(), "balance", "Initial balance must be positive.")
	}
	return v.Err()
}

// ValidateTransferRequest checks the shape of a transfer request. Amount
// positivity is enforced by the transfer service itself.
func ValidateTransferRequest(req models.TransferRequest) error {
	v := New()
	v.RequiredString("accountFromId", &req.AccountFromID)
	v.RequiredString("accountToId", &req.AccountToID)
	return v.Err()
}

/*
Package account provides account management for the transfer service.

The account service handles:
- Account creation with an opening balance
- Balance lookup
- Resetting the in-memory store between test runs

Usage:

	// Create a new account service
	svc := account.NewService(repo, logger)

	// Open an account
	err := svc.CreateAccount(ctx, models.NewAccount("Id-123", decimal.NewFromInt(1000)))

	// Read it back
	acc, err := svc.GetAccount(ctx, "Id-123")

Error Handling:

The service returns domain errors from internal/errors:
- ErrInvalidAccount: empty id or negative opening balance
- ErrDuplicateAccount: the id is already taken
- ErrAccountNotFound: no account with that id
*/
package account

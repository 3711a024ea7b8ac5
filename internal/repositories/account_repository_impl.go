package repositories

import (
	"sync"
	"sync/atomic"

	apperrors "orus-accounts/internal/errors"
	"orus-accounts/internal/lock"
	"orus-accounts/internal/models"

	"github.com/shopspring/decimal"
)

type accountRecord struct {
	id      string
	balance atomic.Pointer[decimal.Decimal]
	lock    *lock.Lock
}

func (r *accountRecord) snapshot() *models.Account {
	return models.NewAccount(r.id, *r.balance.Load())
}

type inMemoryAccountRepository struct {
	accounts sync.Map // string -> *accountRecord
}

// NewInMemoryAccountRepository returns an empty, concurrency-safe store.
func NewInMemoryAccountRepository() AccountRepository {
	return &inMemoryAccountRepository{}
}

func (r *inMemoryAccountRepository) Create(account *models.Account) error {
	if account == nil || account.AccountID == "" {
		return apperrors.ErrInvalidAccount.WithMessage("account id must not be empty")
	}
	if account.Balance.IsNegative() {
		return apperrors.ErrInvalidAccount.WithMessage("initial balance must not be negative")
	}

	rec := &accountRecord{id: account.AccountID, lock: lock.New()}
	balance := account.Balance
	rec.balance.Store(&balance)

	if _, loaded := r.accounts.LoadOrStore(account.AccountID, rec); loaded {
		return apperrors.ErrDuplicateAccount.WithMessage("Account id %s already exists!", account.AccountID)
	}
	return nil
}

func (r *inMemoryAccountRepository) Get(accountID string) (*models.Account, error) {
	rec, err := r.record(accountID)
	if err != nil {
		return nil, err
	}
	return rec.snapshot(), nil
}

func (r *inMemoryAccountRepository) Lock(accountID string) (*lock.Lock, error) {
	rec, err := r.record(accountID)
	if err != nil {
		return nil, err
	}
	return rec.lock, nil
}

func (r *inMemoryAccountRepository) Credit(accountID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, apperrors.ErrInvalidAmount
	}
	rec, err := r.record(accountID)
	if err != nil {
		return decimal.Zero, err
	}

	updated := rec.balance.Load().Add(amount)
	rec.balance.Store(&updated)
	return updated, nil
}

func (r *inMemoryAccountRepository) Debit(accountID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, apperrors.ErrInvalidAmount
	}
	rec, err := r.record(accountID)
	if err != nil {
		return decimal.Zero, err
	}

	current := *rec.balance.Load()
	if current.LessThan(amount) {
		return current, apperrors.ErrInsufficientFunds.WithMessage(
			"Insufficient funds:: transfer amount %s is greater than available balance %s",
			amount.String(), current.String())
	}

	updated := current.Sub(amount)
	rec.balance.Store(&updated)
	return updated, nil
}

func (r *inMemoryAccountRepository) Clear() {
	r.accounts.Clear()
}

func (r *inMemoryAccountRepository) Count() int {
	n := 0
	r.accounts.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (r *inMemoryAccountRepository) record(accountID string) (*accountRecord, error) {
	v, ok := r.accounts.Load(accountID)
	if !ok {
		return nil, apperrors.ErrAccountNotFound.WithMessage("Account id %s not found", accountID)
	}
	return v.(*accountRecord), nil
}

package account

import (
	"context"

	"orus-accounts/internal/models"
	"orus-accounts/internal/repositories"

	"go.uber.org/zap"
)

// Service defines the account management operations.
type Service interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)
	ClearAccounts(ctx context.Context)
	CountAccounts(ctx context.Context) int
}

type service struct {
	repo   repositories.AccountRepository
	logger *zap.Logger
}

// NewService creates a new account service
func NewService(repo repositories.AccountRepository, logger *zap.Logger) Service {
	if repo == nil {
		panic("repo is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{repo: repo, logger: logger}
}

func (s *service) CreateAccount(ctx context.Context, account *models.Account) error {
	if err := s.repo.Create(account); err != nil {
		s.logger.Info("account creation rejected", zap.Error(err))
		return err
	}
	s.logger.Info("Created account",
		zap.String("account_id", account.AccountID),
		zap.String("balance", account.Balance.String()),
	)
	return nil
}

func (s *service) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	s.logger.Debug("Retrieving account", zap.String("account_id", accountID))
	return s.repo.Get(accountID)
}

func (s *service) ClearAccounts(ctx context.Context) {
	s.logger.Warn("Clearing all accounts", zap.Int("count", s.repo.Count()))
	s.repo.Clear()
}

func (s *service) CountAccounts(ctx context.Context) int {
	return s.repo.Count()
}

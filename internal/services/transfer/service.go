package transfer

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "orus-accounts/internal/errors"
	"orus-accounts/internal/lock"
	"orus-accounts/internal/models"
	"orus-accounts/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Config controls lock acquisition.
type Config struct {
	LockTimeout  time.Duration
	LockOrdering string
}

// service implements the transfer Service interface.
type service struct {
	repo     repositories.AccountRepository
	notifier NotificationService
	config   Config
	metrics  MetricsCollector
	logger   *zap.Logger
}

type lockTarget struct {
	accountID string
	lock      *lock.Lock
}

// NewService creates a new transfer service instance.
func NewService(
	repo repositories.AccountRepository,
	notifier NotificationService,
	config Config,
	metrics MetricsCollector,
	logger *zap.Logger,
) Service {
	if repo == nil {
		panic("repo is required")
	}
	if notifier == nil {
		panic("notifier is required")
	}

	if config.LockTimeout <= 0 {
		config.LockTimeout = DefaultLockTimeout
	}
	if config.LockOrdering != OrderFromTo {
		config.LockOrdering = OrderByAccountID
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		repo:     repo,
		notifier: notifier,
		config:   config,
		metrics:  metrics,
		logger:   logger,
	}
}

// Transfer moves req.Amount from the source to the destination account.
// Both account locks are held while the debit and credit run; holders are
// notified only after the locks are released.
func (s *service) Transfer(ctx context.Context, req models.TransferRequest) (*models.TransferResult, error) {
	from, err := s.repo.Get(req.AccountFromID)
	if err != nil {
		s.metrics.RecordTransfer(OutcomeNotFound, req.Amount)
		return nil, err
	}
	to, err := s.repo.Get(req.AccountToID)
	if err != nil {
		s.metrics.RecordTransfer(OutcomeNotFound, req.Amount)
		return nil, err
	}

	if !req.Amount.IsPositive() {
		s.metrics.RecordTransfer(OutcomeInvalidAmount, req.Amount)
		return nil, apperrors.ErrInvalidAmount
	}
	if from.AccountID == to.AccountID {
		s.metrics.RecordTransfer(OutcomeSameAccount, req.Amount)
		return nil, apperrors.ErrSameAccount
	}

	result, err := s.transact(ctx, from.AccountID, to.AccountID, req.Amount)
	if err != nil {
		s.metrics.RecordTransfer(outcomeOf(err), req.Amount)
		return nil, err
	}
	s.metrics.RecordTransfer(OutcomeSuccess, req.Amount)

	s.logger.Info("Successfully transferred",
		zap.String("transfer_id", result.TransferID),
		zap.String("from", result.AccountFromID),
		zap.String("to", result.AccountToID),
		zap.String("amount", result.Amount.String()),
		zap.String("from_balance", result.FromBalance.String()),
		zap.String("to_balance", result.ToBalance.String()),
	)

	s.notifier.NotifyAboutTransfer(ctx, *models.NewAccount(result.AccountFromID, result.FromBalance),
		fmt.Sprintf(DebitNotification, result.Amount.String()))
	s.notifier.NotifyAboutTransfer(ctx, *models.NewAccount(result.AccountToID, result.ToBalance),
		fmt.Sprintf(CreditNotification, result.Amount.String()))

	return result, nil
}

// transact runs the debit/credit pair with both locks held. Locks are
// released in reverse acquisition order on every return path.
func (s *service) transact(ctx context.Context, fromID, toID string, amount decimal.Decimal) (*models.TransferResult, error) {
	first, second, err := s.lockTargets(fromID, toID)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	releaseFirst, err := first.lock.TryAcquire(ctx, s.config.LockTimeout)
	if err != nil {
		return nil, s.busy(first.accountID, err)
	}
	defer releaseFirst()

	releaseSecond, err := second.lock.TryAcquire(ctx, s.config.LockTimeout)
	if err != nil {
		return nil, s.busy(second.accountID, err)
	}
	defer releaseSecond()

	s.metrics.RecordLockWait(time.Since(start))

	fromBalance, err := s.repo.Debit(fromID, amount)
	if err != nil {
		s.logger.Info("transfer rejected",
			zap.String("from", fromID),
			zap.String("to", toID),
			zap.Error(err),
		)
		return nil, err
	}

	toBalance, err := s.repo.Credit(toID, amount)
	if err != nil {
		// Only reachable if the destination vanished (store reset) under us.
		if _, rbErr := s.repo.Credit(fromID, amount); rbErr != nil {
			s.logger.Error("critical error: credit failed and rollback failed",
				zap.String("from", fromID),
				zap.NamedError("credit_error", err),
				zap.NamedError("rollback_error", rbErr),
			)
			return nil, fmt.Errorf("credit failed and rollback failed: %v, %w", err, rbErr)
		}
		return nil, err
	}

	return &models.TransferResult{
		TransferID:    uuid.NewString(),
		AccountFromID: fromID,
		AccountToID:   toID,
		Amount:        amount,
		FromBalance:   fromBalance,
		ToBalance:     toBalance,
		CompletedAt:   time.Now().UTC(),
	}, nil
}

func (s *service) lockTargets(fromID, toID string) (lockTarget, lockTarget, error) {
	fromLock, err := s.repo.Lock(fromID)
	if err != nil {
		return lockTarget{}, lockTarget{}, err
	}
	toLock, err := s.repo.Lock(toID)
	if err != nil {
		return lockTarget{}, lockTarget{}, err
	}

	from := lockTarget{accountID: fromID, lock: fromLock}
	to := lockTarget{accountID: toID, lock: toLock}

	if s.config.LockOrdering == OrderByAccountID && toID < fromID {
		return to, from, nil
	}
	return from, to, nil
}

func (s *service) busy(accountID string, err error) error {
	s.logger.Warn("could not lock account",
		zap.String("account_id", accountID),
		zap.Duration("timeout", s.config.LockTimeout),
		zap.Error(err),
	)
	return apperrors.ErrServerBusy.Wrap(err)
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		return OutcomeInsufficientFunds
	case errors.Is(err, apperrors.ErrServerBusy):
		return OutcomeServerBusy
	case errors.Is(err, apperrors.ErrAccountNotFound):
		return OutcomeNotFound
	default:
		return OutcomeFailed
	}
}

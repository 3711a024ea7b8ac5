package transfer

import (
	"context"
	"time"

	"orus-accounts/internal/models"

	"github.com/shopspring/decimal"
)

// NotificationService is used to notify account holders about transfers.
// Implementations must not block the caller.
type NotificationService interface {
	NotifyAboutTransfer(ctx context.Context, account models.Account, message string)
}

// MetricsCollector records transfer outcomes.
type MetricsCollector interface {
	RecordTransfer(outcome string, amount decimal.Decimal)
	RecordLockWait(d time.Duration)
}

// Service moves funds between two accounts.
type Service interface {
	Transfer(ctx context.Context, req models.TransferRequest) (*models.TransferResult, error)
}

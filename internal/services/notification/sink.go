package notification

import (
	"context"

	"orus-accounts/internal/models"

	"go.uber.org/zap"
)

// Sink delivers a single notification to an account holder.
type Sink interface {
	Send(ctx context.Context, n models.Notification) error
}

// LogSink writes notifications to the application log.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a sink backed by logger.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Send(ctx context.Context, n models.Notification) error {
	s.logger.Info("Sending notification to owner of account",
		zap.String("account_id", n.AccountID),
		zap.String("message", n.Message),
	)
	return nil
}

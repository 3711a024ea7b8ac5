package transfer

import (
	"time"

	"github.com/shopspring/decimal"
)

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordTransfer(string, decimal.Decimal) {}
func (n *NoopMetricsCollector) RecordLockWait(time.Duration)          {}

// Package metrics exposes Prometheus collectors for transfers and
// notification delivery.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// Collector implements the transfer and notification metrics interfaces.
type Collector struct {
	// TransfersTotal counts transfer attempts by outcome.
	TransfersTotal *prometheus.CounterVec
	// TransferredAmount sums the amount moved by successful transfers.
	TransferredAmount prometheus.Counter
	// LockWaitDuration tracks how long a transfer waited for both locks.
	LockWaitDuration prometheus.Histogram
	// NotificationsTotal counts notifications by delivery result.
	NotificationsTotal *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		TransfersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accounts_transfers_total",
				Help: "Total number of transfer attempts by outcome",
			},
			[]string{"outcome"},
		),
		TransferredAmount: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "accounts_transferred_amount_total",
				Help: "Sum of amounts moved by successful transfers",
			},
		),
		LockWaitDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "accounts_transfer_lock_wait_seconds",
				Help:    "Time spent acquiring both account locks",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 3},
			},
		),
		NotificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accounts_notifications_total",
				Help: "Total number of transfer notifications by result",
			},
			[]string{"result"},
		),
	}
}

func (c *Collector) RecordTransfer(outcome string, amount decimal.Decimal) {
	c.TransfersTotal.WithLabelValues(outcome).Inc()
	if outcome == "success" {
		c.TransferredAmount.Add(amount.InexactFloat64())
	}
}

func (c *Collector) RecordLockWait(d time.Duration) {
	c.LockWaitDuration.Observe(d.Seconds())
}

func (c *Collector) RecordNotification(result string) {
	c.NotificationsTotal.WithLabelValues(result).Inc()
}

// Package notification delivers best-effort transfer notifications.
//
// The Dispatcher decouples delivery from the transfer path: enqueueing never
// blocks, and delivery failures are logged and counted but never reported to
// the caller.
package notification

import (
	"context"
	"errors"
	"sync"
	"time"

	"orus-accounts/internal/models"

	"go.uber.org/zap"
)

// Delivery results reported to MetricsCollector.
const (
	ResultSent    = "sent"
	ResultFailed  = "failed"
	ResultDropped = "dropped"
)

// ErrClosed is returned by Close when the dispatcher was already closed.
var ErrClosed = errors.New("notification dispatcher closed")

// MetricsCollector records notification delivery results.
type MetricsCollector interface {
	RecordNotification(result string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordNotification(string) {}

// Config controls the dispatcher's worker pool.
type Config struct {
	Workers     int
	QueueSize   int
	SendTimeout time.Duration
}

// Dispatcher queues notifications and delivers them on worker goroutines.
type Dispatcher struct {
	sink    Sink
	queue   chan models.Notification
	cfg     Config
	metrics MetricsCollector
	logger  *zap.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher starts cfg.Workers goroutines delivering to sink.
func NewDispatcher(sink Sink, cfg Config, metrics MetricsCollector, logger *zap.Logger) *Dispatcher {
	if sink == nil {
		panic("sink is required")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 5 * time.Second
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Dispatcher{
		sink:    sink,
		queue:   make(chan models.Notification, cfg.QueueSize),
		cfg:     cfg,
		metrics: metrics,
		logger:  logger,
	}

	for i := 0; i < cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// NotifyAboutTransfer queues message for the holder of account. It returns
// immediately; if the queue is full or the dispatcher is closed the
// notification is dropped.
func (d *Dispatcher) NotifyAboutTransfer(ctx context.Context, account models.Account, message string) {
	n := models.Notification{
		AccountID: account.AccountID,
		Message:   message,
		SentAt:    time.Now().UTC(),
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(n, "dispatcher closed")
		return
	}

	select {
	case d.queue <- n:
	default:
		d.drop(n, "queue full")
	}
}

// Close stops accepting notifications and waits for queued ones to be
// delivered, or for ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for n := range d.queue {
		d.deliver(n)
	}
}

func (d *Dispatcher) deliver(n models.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.SendTimeout)
	defer cancel()

	if err := d.sink.Send(ctx, n); err != nil {
		d.metrics.RecordNotification(ResultFailed)
		d.logger.Warn("failed to deliver notification",
			zap.String("account_id", n.AccountID),
			zap.Error(err),
		)
		return
	}
	d.metrics.RecordNotification(ResultSent)
}

func (d *Dispatcher) drop(n models.Notification, reason string) {
	d.metrics.RecordNotification(ResultDropped)
	d.logger.Warn("dropping notification",
		zap.String("account_id", n.AccountID),
		zap.String("reason", reason),
	)
}

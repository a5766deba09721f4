// Package jobs runs the periodic background work of the booking service.
package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go-restaurant-booking/models"
	"go-restaurant-booking/repository"

	"github.com/robfig/cron/v3"
)

// PaymentTimeout is how long an order may stay Pending before it is failed.
const PaymentTimeout = 15 * time.Minute

// ExpirySweeper fails orders whose payment never completed.
type ExpirySweeper struct {
	orders  repository.OrderRepository
	logger  *slog.Logger
	timeout time.Duration
	now     func() time.Time
}

func NewExpirySweeper(orders repository.OrderRepository, logger *slog.Logger, timeout time.Duration) *ExpirySweeper {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = PaymentTimeout
	}
	return &ExpirySweeper{orders: orders, logger: logger, timeout: timeout, now: time.Now}
}

// Sweep moves every Pending order created before now-timeout to Failure and
// returns how many were moved. A failing row is logged and skipped.
func (s *ExpirySweeper) Sweep(ctx context.Context) (int, error) {
	cutoff := s.now().UTC().Add(-s.timeout)
	stale, err := s.orders.ListPendingBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	failed := 0
	for _, order := range stale {
		err := s.orders.TransitionPaymentStatus(ctx, order.ID, models.PaymentPending, models.PaymentFailure)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			// paid or swept concurrently
		case err != nil:
			s.logger.Error("expire order failed", "order_id", order.ID.Hex(), "error", err)
		default:
			failed++
		}
	}
	if failed > 0 {
		s.logger.Info("expired pending orders", "count", failed, "cutoff", cutoff)
	}
	return failed, nil
}

// Run schedules Sweep on schedule (a cron expression such as "@every 1m") until ctx
// is done. Overlapping runs are skipped.
func (s *ExpirySweeper) Run(ctx context.Context, schedule string) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(schedule, func() {
		runCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		if _, err := s.Sweep(runCtx); err != nil {
			s.logger.Error("expiry sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

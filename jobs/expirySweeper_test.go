package jobs

import (
	"context"
	"testing"
	"time"

	"go-restaurant-booking/logging"
	"go-restaurant-booking/models"
	"go-restaurant-booking/repository/memory"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSweepFailsOnlyStaleOrders(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	seed := func(age time.Duration, status models.PaymentStatus) primitive.ObjectID {
		o := &models.Order{
			ID:            primitive.NewObjectID(),
			PaymentStatus: status,
			CreatedAt:     now.Add(-age),
		}
		if err := store.Orders.Create(ctx, o); err != nil {
			t.Fatalf("create order: %v", err)
		}
		return o.ID
	}
	stale := seed(16*time.Minute, models.PaymentPending)
	fresh := seed(14*time.Minute, models.PaymentPending)
	paid := seed(time.Hour, models.PaymentSuccess)

	s := NewExpirySweeper(store.Orders, logging.Discard(), 0)
	s.now = func() time.Time { return now }

	n, err := s.Sweep(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 1 {
		t.Fatalf("expired %d orders, want 1", n)
	}

	want := map[primitive.ObjectID]models.PaymentStatus{
		stale: models.PaymentFailure,
		fresh: models.PaymentPending,
		paid:  models.PaymentSuccess,
	}
	pending, _ := store.Orders.ListPendingBefore(ctx, now.Add(time.Hour))
	got := map[primitive.ObjectID]bool{}
	for _, o := range pending {
		got[o.ID] = true
	}
	for id, status := range want {
		if (status == models.PaymentPending) != got[id] {
			t.Fatalf("order %s: pending=%v, want status %s", id.Hex(), got[id], status)
		}
	}

	// A second run finds nothing left to expire.
	if n, _ := s.Sweep(ctx); n != 0 {
		t.Fatalf("second sweep expired %d orders", n)
	}
}

func TestRunStopsWithContext(t *testing.T) {
	s := NewExpirySweeper(memory.NewStore().Orders, logging.Discard(), time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "@every 1s") }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("sweeper did not stop")
	}
}

func TestRunRejectsBadSchedule(t *testing.T) {
	s := NewExpirySweeper(memory.NewStore().Orders, logging.Discard(), time.Minute)
	if err := s.Run(context.Background(), "not a schedule"); err == nil {
		t.Fatalf("expected schedule error")
	}
}

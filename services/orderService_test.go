package services

import (
	"context"
	"testing"

	"go-restaurant-booking/models"
)

func TestOrderLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	table := f.table(t, "A1")
	pho := f.dish(t, "Pho", 50000)
	in := guestBooking(table.ID, "2025-03-10", "18:00")
	in.Dishes = []DishRequest{{DishID: pho.ID.Hex(), Quantity: 2}}
	b := f.book(t, in)

	order, err := f.svc.Orders.Create(ctx, CreateOrderInput{BookingID: b.ID.Hex(), PaymentMethod: "vnpay", PrepaidAmount: 30000})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.TotalAmount != 100000 || order.PaymentStatus != models.PaymentPending || order.RemainingAmount != 70000 {
		t.Fatalf("unexpected order: %+v", order)
	}
	if !order.CreatedAt.Equal(f.now) {
		t.Fatalf("created at = %s", order.CreatedAt)
	}

	order, err = f.svc.Orders.UpdatePaymentStatus(ctx, order.ID.Hex(), "Deposited")
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	order, err = f.svc.Orders.UpdatePaymentStatus(ctx, order.ID.Hex(), "Success")
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if order.PrepaidAmount != 100000 || order.RemainingAmount != 0 {
		t.Fatalf("settled order: %+v", order)
	}
	_, err = f.svc.Orders.UpdatePaymentStatus(ctx, order.ID.Hex(), "Failure")
	expectKind(t, err, KindState)

	got, err := f.svc.Orders.Get(ctx, order.ID.Hex())
	if err != nil || got.PaymentStatus != models.PaymentSuccess {
		t.Fatalf("get order: %+v %v", got, err)
	}

	c, err := f.svc.Bookings.Invoice(ctx, b.ID.Hex())
	if err != nil {
		t.Fatalf("invoice: %v", err)
	}
	if c.PaymentMethod != "vnpay" || c.PaymentStatus != "Success" || c.TotalBill != 100000 {
		t.Fatalf("invoice payment details: %+v", c)
	}
	stored, _ := f.store.Bookings.GetByID(ctx, b.ID)
	if stored.Status != models.StatusPending {
		t.Fatalf("invoice must not change the booking, status %s", stored.Status)
	}
}

func TestOrderValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	table := f.table(t, "A1")
	b := f.book(t, guestBooking(table.ID, "2025-03-10", "18:00"))

	_, err := f.svc.Orders.Create(ctx, CreateOrderInput{BookingID: b.ID.Hex()})
	expectKind(t, err, KindValidation)
	_, err = f.svc.Orders.Create(ctx, CreateOrderInput{BookingID: b.ID.Hex(), PaymentMethod: "cash", PrepaidAmount: 1})
	expectKind(t, err, KindValidation)
	_, err = f.svc.Orders.Create(ctx, CreateOrderInput{BookingID: "65f000000000000000000000", PaymentMethod: "cash"})
	expectKind(t, err, KindNotFound)

	order, err := f.svc.Orders.Create(ctx, CreateOrderInput{BookingID: b.ID.Hex(), PaymentMethod: "cash"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err = f.svc.Orders.UpdatePaymentStatus(ctx, order.ID.Hex(), "Paid")
	expectKind(t, err, KindValidation)
	_, err = f.svc.Orders.Get(ctx, "nope")
	expectKind(t, err, KindValidation)
}

func TestMenuCreateAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Menu.Create(ctx, models.Dish{Name: "  ", Price: 10})
	expectKind(t, err, KindValidation)
	_, err = f.svc.Menu.Create(ctx, models.Dish{Name: "Pho", Price: -1})
	expectKind(t, err, KindValidation)

	dish, err := f.svc.Menu.Create(ctx, models.Dish{Name: " Pho ", Category: "soup", Price: 50000, IsAvailable: true})
	if err != nil {
		t.Fatalf("create dish: %v", err)
	}
	got, err := f.svc.Menu.Get(ctx, dish.ID.Hex())
	if err != nil || got.Name != "Pho" {
		t.Fatalf("get dish: %+v %v", got, err)
	}
	_, err = f.svc.Menu.Get(ctx, "65f000000000000000000000")
	expectKind(t, err, KindNotFound)
}

package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-restaurant-booking/models"
	"go-restaurant-booking/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTableNumberIsUnique(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	if err := store.Tables.Create(ctx, &models.Table{TableNumber: "A1", Capacity: 4}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := store.Tables.Create(ctx, &models.Table{TableNumber: "A1", Capacity: 2})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestGuestPerBookingIsUnique(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	bookingID := primitive.NewObjectID()
	if err := store.Guests.Create(ctx, &models.Guest{BookingID: bookingID, Name: "Ann"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := store.Guests.Create(ctx, &models.Guest{BookingID: bookingID, Name: "Bob"})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestTransitionPaymentStatusIsConditional(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	order := &models.Order{PaymentStatus: models.PaymentPending, CreatedAt: time.Now()}
	if err := store.Orders.Create(ctx, order); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Orders.TransitionPaymentStatus(ctx, order.ID, models.PaymentPending, models.PaymentFailure); err != nil {
		t.Fatalf("transition: %v", err)
	}
	err := store.Orders.TransitionPaymentStatus(ctx, order.ID, models.PaymentPending, models.PaymentFailure)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("second transition should not match, got %v", err)
	}
}

func TestFindBookingsFiltersAndOrders(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	owner := primitive.NewObjectID()
	older := &models.Booking{UserID: &owner, BookingDate: day, Status: models.StatusConfirmed, OrderType: models.OrderDineIn, CreatedAt: day}
	newer := &models.Booking{BookingDate: day.AddDate(0, 0, 1), Status: models.StatusPending, OrderType: models.OrderDineIn, CreatedAt: day.Add(time.Hour)}
	other := &models.Booking{BookingDate: day.AddDate(0, 0, 5), Status: models.StatusConfirmed, OrderType: models.OrderPickup, CreatedAt: day.Add(2 * time.Hour)}
	for _, b := range []*models.Booking{older, newer, other} {
		if err := store.Bookings.Create(ctx, b); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, _ := store.Bookings.Find(ctx, repository.BookingFilter{})
	if len(all) != 3 || all[0].ID != other.ID || all[2].ID != older.ID {
		t.Fatalf("expected newest first, got %+v", all)
	}

	to := day.AddDate(0, 0, 1)
	ranged, _ := store.Bookings.Find(ctx, repository.BookingFilter{From: &day, To: &to, OrderType: models.OrderDineIn})
	if len(ranged) != 2 {
		t.Fatalf("expected 2 dine-in bookings in range, got %d", len(ranged))
	}

	owned, _ := store.Bookings.Find(ctx, repository.BookingFilter{Owners: &repository.OwnerFilter{
		UserIDs:    []primitive.ObjectID{owner},
		BookingIDs: []primitive.ObjectID{other.ID},
	}})
	if len(owned) != 2 {
		t.Fatalf("expected owner filter to match 2 bookings, got %d", len(owned))
	}

	confirmed, _ := store.Bookings.Find(ctx, repository.BookingFilter{Statuses: []models.BookingStatus{models.StatusConfirmed}})
	if len(confirmed) != 2 {
		t.Fatalf("expected 2 confirmed bookings, got %d", len(confirmed))
	}
}

func TestDishListPaging(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	for _, name := range []string{"Pho", "Banh mi", "Che", "Com tam"} {
		store.Dishes.Create(ctx, &models.Dish{Name: name, Category: "main", IsAvailable: name != "Che"})
	}
	available := true
	page, total, err := store.Dishes.List(ctx, repository.DishFilter{IsAvailable: &available, Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(page) != 2 || page[0].Name != "Com tam" {
		t.Fatalf("unexpected page: total=%d %+v", total, page)
	}
}

package services

import (
	"context"
	"sync"
	"testing"

	"go-restaurant-booking/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateRejectsOverlappingWindows(t *testing.T) {
	f := newFixture(t)
	table := f.table(t, "A1")
	f.book(t, guestBooking(table.ID, "2025-03-10", "18:00"))

	cases := []struct {
		start string
		ok    bool
	}{
		{"22:59", false},
		{"17:30", false},
		{"13:01", false},
		{"23:00", true},
		{"13:00", true},
	}
	for _, tc := range cases {
		_, err := f.svc.Bookings.Create(context.Background(), guestBooking(table.ID, "2025-03-10", tc.start))
		if tc.ok && err != nil {
			t.Fatalf("start %s: expected success, got %v", tc.start, err)
		}
		if !tc.ok {
			expectKind(t, err, KindConflict)
		}
	}
}

func TestCreateDetectsConflictAcrossMidnight(t *testing.T) {
	f := newFixture(t)
	table := f.table(t, "A1")
	f.book(t, guestBooking(table.ID, "2025-03-10", "22:00"))

	_, err := f.svc.Bookings.Create(context.Background(), guestBooking(table.ID, "2025-03-11", "01:00"))
	expectKind(t, err, KindConflict)

	if _, err := f.svc.Bookings.Create(context.Background(), guestBooking(table.ID, "2025-03-11", "03:00")); err != nil {
		t.Fatalf("03:00 next day should be free: %v", err)
	}
}

func TestConcurrentCreatesHaveOneWinner(t *testing.T) {
	f := newFixture(t)
	table := f.table(t, "A1")

	const attempts = 12
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Bookings.Create(context.Background(), guestBooking(table.ID, "2025-03-10", "18:00"))
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}
		expectKind(t, err, KindConflict)
	}
	if won != 1 {
		t.Fatalf("expected exactly one booking to win, got %d", won)
	}
}

func TestCanceledBookingsDoNotBlock(t *testing.T) {
	f := newFixture(t)
	table := f.table(t, "A1")
	b := f.book(t, guestBooking(table.ID, "2025-03-10", "18:00"))
	if _, err := f.svc.Reservations.UpdateStatus(context.Background(), b.ID.Hex(), "canceled"); err != nil {
		t.Fatalf("cancel status: %v", err)
	}
	if _, err := f.svc.Bookings.Create(context.Background(), guestBooking(table.ID, "2025-03-10", "19:00")); err != nil {
		t.Fatalf("expected slot of a canceled booking to be free: %v", err)
	}
}

func TestListAvailableTablesDoesNotMutate(t *testing.T) {
	f := newFixture(t)
	a1 := f.table(t, "A1")
	f.table(t, "A2")
	f.book(t, guestBooking(a1.ID, "2025-03-10", "18:00"))

	views, err := f.svc.Availability.ListAvailableTables(context.Background(), "2025-03-10", "20:00")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(views))
	}
	for _, v := range views {
		switch v.TableNumber {
		case "A1":
			if v.IsAvailable || v.Status != models.TableReserved {
				t.Fatalf("A1 should be reserved: %+v", v)
			}
		case "A2":
			if !v.IsAvailable || v.Status != models.TableAvailable {
				t.Fatalf("A2 should be available: %+v", v)
			}
		}
	}

	stored, _ := f.store.Tables.GetByID(context.Background(), a1.ID)
	if stored.Status != models.TableReserved || stored.LastBookedAt == nil {
		t.Fatalf("stored table changed: %+v", stored)
	}
}

func TestCheckTableValidatesInput(t *testing.T) {
	f := newFixture(t)
	table := f.table(t, "A1")
	ctx := context.Background()

	_, err := f.svc.Availability.CheckTable(ctx, table.ID.Hex(), "2025-03-10", "25:00")
	expectKind(t, err, KindValidation)
	_, err = f.svc.Availability.CheckTable(ctx, table.ID.Hex(), "not-a-date", "18:00")
	expectKind(t, err, KindValidation)
	_, err = f.svc.Availability.CheckTable(ctx, primitive.NewObjectID().Hex(), "2025-03-10", "18:00")
	expectKind(t, err, KindNotFound)

	ok, err := f.svc.Availability.CheckTable(ctx, table.ID.Hex(), "2025-03-10", "18:00")
	if err != nil || !ok {
		t.Fatalf("expected free table, got %v %v", ok, err)
	}
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-restaurant-booking/models"
	"go-restaurant-booking/repository"
)

func TestUpdateStatusRules(t *testing.T) {
	f := newFixture(t)
	table := f.table(t, "A1")
	b := f.book(t, guestBooking(table.ID, "2025-03-10", "18:00"))
	ctx := context.Background()
	id := b.ID.Hex()

	_, err := f.svc.Reservations.UpdateStatus(ctx, id, "eaten")
	expectKind(t, err, KindValidation)
	_, err = f.svc.Reservations.UpdateStatus(ctx, id, "pending")
	expectKind(t, err, KindState)

	updated, err := f.svc.Reservations.UpdateStatus(ctx, id, "Cooking")
	if err != nil || updated.Status != models.StatusCooking {
		t.Fatalf("status update: %+v %v", updated, err)
	}
	if _, err := f.svc.Reservations.UpdateStatus(ctx, id, "completed"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	_, err = f.svc.Reservations.UpdateStatus(ctx, id, "canceled")
	expectKind(t, err, KindState)
}

func TestUpdateStatusReviveChecksAvailability(t *testing.T) {
	f := newFixture(t)
	a1 := f.table(t, "A1")
	ctx := context.Background()

	first := f.book(t, guestBooking(a1.ID, "2025-03-10", "18:00"))
	if _, err := f.svc.Reservations.UpdateStatus(ctx, first.ID.Hex(), "canceled"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	second := f.book(t, guestBooking(a1.ID, "2025-03-10", "19:00"))

	_, err := f.svc.Reservations.UpdateStatus(ctx, first.ID.Hex(), "pending")
	expectKind(t, err, KindConflict)
	stored, _ := f.store.Bookings.GetByID(ctx, first.ID)
	if stored.Status != models.StatusCanceled {
		t.Fatalf("rejected revive changed status to %s", stored.Status)
	}

	if _, err := f.svc.Reservations.UpdateStatus(ctx, second.ID.Hex(), "canceled"); err != nil {
		t.Fatalf("cancel second: %v", err)
	}
	revived, err := f.svc.Reservations.UpdateStatus(ctx, first.ID.Hex(), "pending")
	if err != nil {
		t.Fatalf("revive: %v", err)
	}
	if revived.Status != models.StatusPending {
		t.Fatalf("revived status = %s", revived.Status)
	}
	table, _ := f.store.Tables.GetByID(ctx, a1.ID)
	if table.Status != models.TableReserved {
		t.Fatalf("table status = %s, want reserved", table.Status)
	}
}

func TestReassignTable(t *testing.T) {
	f := newFixture(t)
	a1 := f.table(t, "A1")
	a2 := f.table(t, "A2")
	a3 := f.table(t, "A3")
	ctx := context.Background()
	b := f.book(t, guestBooking(a1.ID, "2025-03-10", "18:00"))
	f.book(t, guestBooking(a3.ID, "2025-03-10", "20:00"))

	_, err := f.svc.Reservations.ReassignTable(ctx, b.ID.Hex(), a3.ID.Hex())
	expectKind(t, err, KindConflict)

	moved, err := f.svc.Reservations.ReassignTable(ctx, b.ID.Hex(), a2.ID.Hex())
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if moved.TableID != a2.ID {
		t.Fatalf("booking not moved")
	}
	newTable, _ := f.store.Tables.GetByID(ctx, a2.ID)
	if newTable.Status != models.TableUnavailable {
		t.Fatalf("new table status = %s", newTable.Status)
	}
	oldTable, _ := f.store.Tables.GetByID(ctx, a1.ID)
	if oldTable.Status != models.TableAvailable {
		t.Fatalf("old table status = %s", oldTable.Status)
	}

	_, err = f.svc.Reservations.ReassignTable(ctx, b.ID.Hex(), "")
	expectKind(t, err, KindValidation)
}

func TestDeleteReservationCascades(t *testing.T) {
	f := newFixture(t)
	table := f.table(t, "A1")
	pho := f.dish(t, "Pho", 50000)
	ctx := context.Background()
	in := guestBooking(table.ID, "2025-03-10", "18:00")
	in.Dishes = []DishRequest{{DishID: pho.ID.Hex(), Quantity: 1}}
	b := f.book(t, in)
	if _, err := f.svc.Reservations.UpdateStatus(ctx, b.ID.Hex(), "completed"); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if err := f.svc.Reservations.DeleteReservation(ctx, b.ID.Hex()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.store.Bookings.GetByID(ctx, b.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("booking still present")
	}
	if items, _ := f.store.BookingDishes.ListByBooking(ctx, b.ID); len(items) != 0 {
		t.Fatalf("line items still present: %d", len(items))
	}
	if _, err := f.store.Guests.FindByBooking(ctx, b.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("guest still present")
	}
	err := f.svc.Reservations.DeleteReservation(ctx, b.ID.Hex())
	expectKind(t, err, KindNotFound)
}

func TestListReservationsFilters(t *testing.T) {
	f := newFixture(t)
	table := f.table(t, "A1")
	user := f.user(t, "Minh Nguyen", "minh@example.com")
	ctx := context.Background()

	byUser := f.book(t, CreateBookingInput{TableID: table.ID.Hex(), BookingDate: "2025-03-01", StartTime: "08:00", UserID: user.ID.Hex()})
	f.now = f.now.Add(time.Minute)
	guestIn := guestBooking(table.ID, "2025-03-05", "18:00")
	guestIn.Name = "Hoa Pham"
	guestIn.OrderType = models.OrderPickup
	byGuest := f.book(t, guestIn)
	if _, err := f.svc.Reservations.UpdateStatus(ctx, byGuest.ID.Hex(), "confirmed"); err != nil {
		t.Fatalf("confirm status: %v", err)
	}

	all, err := f.svc.Reservations.ListReservations(ctx, ReservationQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != byGuest.ID {
		t.Fatalf("expected newest first, got %d rows", len(all))
	}
	if all[0].Guest == nil || all[0].Table == nil || all[0].Table.TableNumber != "A1" {
		t.Fatalf("row not joined: %+v", all[0])
	}
	if all[1].User == nil || all[1].User.Fullname != "Minh Nguyen" {
		t.Fatalf("owner not joined: %+v", all[1])
	}

	rows, _ := f.svc.Reservations.ListReservations(ctx, ReservationQuery{SearchText: "minh"})
	if len(rows) != 1 || rows[0].ID != byUser.ID {
		t.Fatalf("search by user name: %d rows", len(rows))
	}
	rows, _ = f.svc.Reservations.ListReservations(ctx, ReservationQuery{SearchText: "hoa"})
	if len(rows) != 1 || rows[0].ID != byGuest.ID {
		t.Fatalf("search by guest name: %d rows", len(rows))
	}
	rows, _ = f.svc.Reservations.ListReservations(ctx, ReservationQuery{SearchText: "nobody"})
	if len(rows) != 0 {
		t.Fatalf("unmatched search should be empty, got %d", len(rows))
	}

	rows, _ = f.svc.Reservations.ListReservations(ctx, ReservationQuery{DateRange: RangeToday})
	if len(rows) != 1 || rows[0].ID != byUser.ID {
		t.Fatalf("today: %d rows", len(rows))
	}
	rows, _ = f.svc.Reservations.ListReservations(ctx, ReservationQuery{FromDate: "2025-03-02", ToDate: "2025-03-31"})
	if len(rows) != 1 || rows[0].ID != byGuest.ID {
		t.Fatalf("explicit range: %d rows", len(rows))
	}
	rows, _ = f.svc.Reservations.ListReservations(ctx, ReservationQuery{OrderType: "pickup", Status: "CONFIRMED"})
	if len(rows) != 1 {
		t.Fatalf("order type and status: %d rows", len(rows))
	}
	rows, _ = f.svc.Reservations.ListReservations(ctx, ReservationQuery{StaffView: true})
	if len(rows) != 1 || rows[0].Status != models.StatusConfirmed {
		t.Fatalf("staff view: %d rows", len(rows))
	}

	_, err = f.svc.Reservations.ListReservations(ctx, ReservationQuery{DateRange: "someday"})
	expectKind(t, err, KindValidation)
}

func TestNamedRanges(t *testing.T) {
	now := time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)
	day := func(m time.Month, d int) time.Time { return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC) }
	cases := []struct {
		name     string
		from, to time.Time
	}{
		{RangeToday, day(3, 15), day(3, 15)},
		{RangeYesterday, day(3, 14), day(3, 14)},
		{RangeLast7Days, day(3, 8), day(3, 15)},
		{RangeThisMonth, day(3, 1), day(3, 31)},
		{RangeLastMonth, day(2, 1), day(2, 28)},
	}
	for _, tc := range cases {
		from, to, err := namedRange(tc.name, now)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if !from.Equal(tc.from) || !to.Equal(tc.to) {
			t.Fatalf("%s: got %s..%s", tc.name, from, to)
		}
	}
}

package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-restaurant-booking/helpers"
	"go-restaurant-booking/models"
	"go-restaurant-booking/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Named date ranges accepted by ListReservations.
const (
	RangeToday     = "today"
	RangeYesterday = "yesterday"
	RangeLast7Days = "last7days"
	RangeThisMonth = "thisMonth"
	RangeLastMonth = "lastMonth"
)

// ReservationQuery filters the staff reservation list. Empty fields match everything.
type ReservationQuery struct {
	DateRange  string `form:"dateRange"`
	FromDate   string `form:"fromDate"`
	ToDate     string `form:"toDate"`
	OrderType  string `form:"orderType"`
	Status     string `form:"status"`
	SearchText string `form:"searchText"`
	// StaffView limits the list to confirmed and canceled bookings unless Status is set.
	StaffView bool `form:"-"`
}

type ReservationService struct {
	*core
	availability *AvailabilityChecker
}

func (s *ReservationService) GetDetails(ctx context.Context, id string) (*models.BookingDetails, error) {
	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, booking)
}

// UpdateStatus moves a booking to status. Writing the current status again,
// or canceling a completed booking, is rejected. Reviving a canceled booking
// fails with a conflict when its window has since been booked.
func (s *ReservationService) UpdateStatus(ctx context.Context, id string, status string) (*models.Booking, error) {
	next := models.BookingStatus(strings.ToLower(strings.TrimSpace(status)))
	if !next.Valid() {
		return nil, validationf("invalid status %q", status)
	}
	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == next {
		return nil, statef("booking is already %s", next)
	}
	if booking.Status == models.StatusCompleted && next == models.StatusCanceled {
		return nil, statef("a completed booking cannot be canceled")
	}

	var window *repository.TableWindow
	if booking.Status == models.StatusCanceled {
		// A canceled booking gave up its window; taking it back needs the table free again.
		slot, err := ParseSlot(helpers.FormatDate(booking.BookingDate), booking.StartTime)
		if err != nil {
			return nil, err
		}
		unlock := s.locks.lockTable(tableDate{booking.TableID, slot.Date})
		defer unlock()

		free, err := s.availability.IsAvailable(ctx, booking.TableID, slot, booking.ID)
		if err != nil {
			return nil, s.fail("could not check availability", err)
		}
		if !free {
			return nil, conflict(ErrAlreadyBooked)
		}
		w := slot.Window()
		window = &repository.TableWindow{Start: w.Start, End: w.End}
	}

	booking.Status = next
	if err := s.store.Bookings.Update(ctx, booking); err != nil {
		return nil, s.fail("could not update booking status", err)
	}
	if window != nil {
		if err := s.store.Tables.SetStatus(ctx, booking.TableID, models.TableReserved, window); err != nil {
			s.logger.Warn("mark table reserved failed", "table", booking.TableID.Hex(), "error", err)
		}
	}
	if next == models.StatusCanceled {
		if err := s.releaseTableIfIdle(ctx, booking.TableID, booking.ID); err != nil {
			s.logger.Warn("release table failed", "table", booking.TableID.Hex(), "error", err)
		}
	}
	s.logger.Info("booking status updated", "booking", id, "status", next)
	s.publish(ctx, EventBookingStatus, booking)
	return booking, nil
}

// ReassignTable moves a booking to another table. The new table must be free
// for the booking's window; it is then marked unavailable.
func (s *ReservationService) ReassignTable(ctx context.Context, id string, rawTableID string) (*models.Booking, error) {
	if blank(rawTableID) {
		return nil, validationf("tableId is required")
	}
	tableID, err := parseID(rawTableID, "table")
	if err != nil {
		return nil, err
	}
	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	table, err := s.loadTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if booking.TableID == tableID {
		return booking, nil
	}
	slot, err := ParseSlot(helpers.FormatDate(booking.BookingDate), booking.StartTime)
	if err != nil {
		return nil, err
	}

	oldTableID := booking.TableID
	unlock := s.locks.lockTable(tableDate{oldTableID, slot.Date}, tableDate{tableID, slot.Date})
	defer unlock()

	free, err := s.availability.IsAvailable(ctx, tableID, slot, booking.ID)
	if err != nil {
		return nil, s.fail("could not check availability", err)
	}
	if !free {
		return nil, conflict(ErrAlreadyBooked)
	}

	booking.TableID = tableID
	if err := s.store.Bookings.Update(ctx, booking); err != nil {
		return nil, s.fail("could not reassign table", err)
	}
	if err := s.releaseTableIfIdle(ctx, oldTableID, booking.ID); err != nil {
		s.logger.Warn("release table failed", "table", oldTableID.Hex(), "error", err)
	}
	w := slot.Window()
	if err := s.store.Tables.SetStatus(ctx, tableID, models.TableUnavailable, &repository.TableWindow{Start: w.Start, End: w.End}); err != nil {
		s.logger.Warn("mark table unavailable failed", "table", table.TableNumber, "error", err)
	}
	s.publish(ctx, EventBookingTable, booking)
	return booking, nil
}

// DeleteReservation removes a booking and everything it owns, whatever its status.
func (s *ReservationService) DeleteReservation(ctx context.Context, id string) error {
	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return err
	}
	return s.remove(ctx, booking, EventBookingCanceled)
}

// ListReservations returns matching bookings newest first, each joined with its
// owner, table, line items and guest record.
func (s *ReservationService) ListReservations(ctx context.Context, q ReservationQuery) ([]models.Reservation, error) {
	filter, err := s.buildFilter(ctx, q)
	if err != nil {
		return nil, err
	}
	out := []models.Reservation{}
	if filter == nil {
		return out, nil
	}
	bookings, err := s.store.Bookings.Find(ctx, *filter)
	if err != nil {
		return nil, s.fail("could not list reservations", err)
	}
	if len(bookings) == 0 {
		return out, nil
	}

	ids := make([]primitive.ObjectID, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}
	items, err := s.store.BookingDishes.ListByBookings(ctx, ids)
	if err != nil {
		return nil, s.fail("could not load booking dishes", err)
	}
	itemsByBooking := make(map[primitive.ObjectID][]models.BookingDish)
	for _, item := range items {
		itemsByBooking[item.BookingID] = append(itemsByBooking[item.BookingID], item)
	}
	guests, err := s.store.Guests.ListByBookings(ctx, ids)
	if err != nil {
		return nil, s.fail("could not load guests", err)
	}
	guestByBooking := make(map[primitive.ObjectID]models.Guest, len(guests))
	for _, g := range guests {
		guestByBooking[g.BookingID] = g
	}

	tables := make(map[primitive.ObjectID]*models.TableSummary)
	users := make(map[primitive.ObjectID]*models.UserSummary)
	for _, b := range bookings {
		r := models.Reservation{Booking: b}
		r.Table = s.tableSummary(ctx, tables, b.TableID)
		if !b.IsGuest() {
			r.User = s.userSummary(ctx, users, *b.UserID)
		}
		if g, ok := guestByBooking[b.ID]; ok {
			g := g
			r.Guest = &g
		}
		r.Dishes, _, err = s.dishLines(ctx, itemsByBooking[b.ID])
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// buildFilter returns nil when a search text matches nobody.
func (s *ReservationService) buildFilter(ctx context.Context, q ReservationQuery) (*repository.BookingFilter, error) {
	filter := &repository.BookingFilter{}

	if q.DateRange != "" {
		from, to, err := namedRange(q.DateRange, s.now())
		if err != nil {
			return nil, err
		}
		filter.From, filter.To = &from, &to
	}
	if q.FromDate != "" || q.ToDate != "" {
		filter.From, filter.To = nil, nil
		if q.FromDate != "" {
			from, err := helpers.ParseBookingDate(q.FromDate)
			if err != nil {
				return nil, validationf("invalid fromDate %q", q.FromDate)
			}
			filter.From = &from
		}
		if q.ToDate != "" {
			to, err := helpers.ParseBookingDate(q.ToDate)
			if err != nil {
				return nil, validationf("invalid toDate %q", q.ToDate)
			}
			filter.To = &to
		}
	}

	if q.OrderType != "" {
		t := models.OrderType(strings.ToLower(q.OrderType))
		if !t.Valid() {
			return nil, validationf("invalid order type %q", q.OrderType)
		}
		filter.OrderType = t
	}
	switch {
	case q.Status != "":
		status := models.BookingStatus(strings.ToLower(strings.TrimSpace(q.Status)))
		if !status.Valid() {
			return nil, validationf("invalid status %q", q.Status)
		}
		filter.Statuses = []models.BookingStatus{status}
	case q.StaffView:
		filter.Statuses = []models.BookingStatus{models.StatusConfirmed, models.StatusCanceled}
	}

	if text := strings.TrimSpace(q.SearchText); text != "" {
		users, err := s.store.Users.SearchByName(ctx, text)
		if err != nil {
			return nil, s.fail("could not search users", err)
		}
		guests, err := s.store.Guests.SearchByName(ctx, text)
		if err != nil {
			return nil, s.fail("could not search guests", err)
		}
		if len(users) == 0 && len(guests) == 0 {
			return nil, nil
		}
		owners := &repository.OwnerFilter{}
		for _, u := range users {
			owners.UserIDs = append(owners.UserIDs, u.ID)
		}
		for _, g := range guests {
			owners.BookingIDs = append(owners.BookingIDs, g.BookingID)
		}
		filter.Owners = owners
	}
	return filter, nil
}

// namedRange resolves a named range to inclusive booking-date bounds in UTC.
func namedRange(name string, now time.Time) (time.Time, time.Time, error) {
	today := helpers.NormalizeDate(now)
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	switch name {
	case RangeToday:
		return today, today, nil
	case RangeYesterday:
		y := today.AddDate(0, 0, -1)
		return y, y, nil
	case RangeLast7Days:
		return today.AddDate(0, 0, -7), today, nil
	case RangeThisMonth:
		return firstOfMonth, firstOfMonth.AddDate(0, 1, -1), nil
	case RangeLastMonth:
		return firstOfMonth.AddDate(0, -1, 0), firstOfMonth.AddDate(0, 0, -1), nil
	}
	return time.Time{}, time.Time{}, validationf("unknown date range %q", name)
}

func (s *ReservationService) tableSummary(ctx context.Context, cache map[primitive.ObjectID]*models.TableSummary, id primitive.ObjectID) *models.TableSummary {
	if summary, ok := cache[id]; ok {
		return summary
	}
	var summary *models.TableSummary
	table, err := s.store.Tables.GetByID(ctx, id)
	if err == nil {
		summary = &models.TableSummary{ID: table.ID.Hex(), TableNumber: table.TableNumber, Capacity: table.Capacity}
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn("load table for reservation list failed", "table", id.Hex(), "error", err)
	}
	cache[id] = summary
	return summary
}

func (s *ReservationService) userSummary(ctx context.Context, cache map[primitive.ObjectID]*models.UserSummary, id primitive.ObjectID) *models.UserSummary {
	if summary, ok := cache[id]; ok {
		return summary
	}
	var summary *models.UserSummary
	user, err := s.store.Users.GetByID(ctx, id)
	if err == nil {
		summary = &models.UserSummary{ID: user.ID.Hex(), Fullname: user.Fullname, Email: user.Email, PhoneNumber: user.PhoneNumber}
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn("load user for reservation list failed", "user", id.Hex(), "error", err)
	}
	cache[id] = summary
	return summary
}

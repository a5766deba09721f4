package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-restaurant-booking/helpers"
	"go-restaurant-booking/models"
	"go-restaurant-booking/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AvailabilityChecker decides whether a table is free for a service window.
// Bookings are the only source of truth; the table status hint is never read.
type AvailabilityChecker struct {
	store *repository.Store
}

// Slot is a validated (date, start time) request.
type Slot struct {
	Date      time.Time
	StartTime string
	window    helpers.Window
}

// ParseSlot validates a raw booking date and start time.
func ParseSlot(bookingDate, startTime string) (Slot, error) {
	date, err := helpers.ParseBookingDate(bookingDate)
	if err != nil {
		return Slot{}, validationf("invalid booking date %q", bookingDate)
	}
	w, err := helpers.WindowFor(date, startTime)
	if err != nil {
		return Slot{}, validationf("invalid start time %q", startTime)
	}
	return Slot{Date: date, StartTime: startTime, window: w}, nil
}

// Window returns the absolute service window of the slot.
func (s Slot) Window() helpers.Window { return s.window }

// IsAvailable reports whether tableID has no live booking overlapping the slot.
// excludeID, when non-zero, is left out of the comparison.
func (a *AvailabilityChecker) IsAvailable(ctx context.Context, tableID primitive.ObjectID, slot Slot, excludeID primitive.ObjectID) (bool, error) {
	existing, err := a.store.Bookings.ListByTableAndDates(ctx, tableID, helpers.NeighbourDates(slot.Date))
	if err != nil {
		return false, fmt.Errorf("list bookings of table %s: %w", tableID.Hex(), err)
	}
	return !conflicts(existing, slot.window, excludeID), nil
}

// CheckTable is the request-level form of IsAvailable.
func (a *AvailabilityChecker) CheckTable(ctx context.Context, rawTableID, bookingDate, startTime string) (bool, error) {
	tableID, err := parseID(rawTableID, "table")
	if err != nil {
		return false, err
	}
	slot, err := ParseSlot(bookingDate, startTime)
	if err != nil {
		return false, err
	}
	if _, err := a.store.Tables.GetByID(ctx, tableID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, notFoundf("table %s not found", rawTableID)
		}
		return false, internal("could not load table", err)
	}
	ok, err := a.IsAvailable(ctx, tableID, slot, primitive.NilObjectID)
	if err != nil {
		return false, internal("could not check availability", err)
	}
	return ok, nil
}

// ListAvailableTables annotates every table with its availability for the slot.
// The stored tables are left untouched.
func (a *AvailabilityChecker) ListAvailableTables(ctx context.Context, bookingDate, startTime string) ([]models.TableView, error) {
	slot, err := ParseSlot(bookingDate, startTime)
	if err != nil {
		return nil, err
	}
	tables, err := a.store.Tables.List(ctx, repository.TableFilter{})
	if err != nil {
		return nil, internal("could not list tables", err)
	}
	bookings, err := a.store.Bookings.ListByDates(ctx, helpers.NeighbourDates(slot.Date))
	if err != nil {
		return nil, internal("could not list bookings", err)
	}
	byTable := make(map[primitive.ObjectID][]models.Booking)
	for _, b := range bookings {
		byTable[b.TableID] = append(byTable[b.TableID], b)
	}

	views := make([]models.TableView, 0, len(tables))
	for _, t := range tables {
		free := !conflicts(byTable[t.ID], slot.window, primitive.NilObjectID)
		view := models.TableView{Table: t, IsAvailable: free}
		view.Status = models.TableAvailable
		if !free {
			view.Status = models.TableReserved
		}
		views = append(views, view)
	}
	return views, nil
}

// conflicts reports whether w overlaps any non-canceled booking other than excludeID.
func conflicts(bookings []models.Booking, w helpers.Window, excludeID primitive.ObjectID) bool {
	for _, b := range bookings {
		if b.ID == excludeID || b.Status == models.StatusCanceled {
			continue
		}
		existing, err := helpers.WindowFor(b.BookingDate, b.StartTime)
		if err != nil {
			continue
		}
		if w.Overlaps(existing) {
			return true
		}
	}
	return false
}

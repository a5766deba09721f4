// Package services holds the booking engine: table registry, availability,
// the booking lifecycle and the staff reservation operations.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go-restaurant-booking/helpers"
	"go-restaurant-booking/models"
	"go-restaurant-booking/repository"

	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()

// Booking lifecycle events.
const (
	EventBookingCreated   = "booking.created"
	EventBookingUpdated   = "booking.updated"
	EventBookingCanceled  = "booking.canceled"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingStatus    = "booking.status"
	EventBookingTable     = "booking.table"
)

// ConfirmationSender delivers the confirmation mail of a booking.
type ConfirmationSender interface {
	SendBookingConfirmation(ctx context.Context, to string, confirmation models.Confirmation) error
}

// EventPublisher fans booking events out to listeners. Delivery is best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload interface{}) error
}

type Options struct {
	Confirmations ConfirmationSender
	Events        EventPublisher
	Logger        *slog.Logger
	Now           func() time.Time
}

type Services struct {
	Tables       *TableService
	Availability *AvailabilityChecker
	Bookings     *BookingService
	Reservations *ReservationService
	Users        *UserService
	Orders       *OrderService
	Menu         *MenuService
}

func New(store *repository.Store, tokens *helpers.TokenHelper, opts Options) *Services {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	c := &core{
		store:  store,
		locks:  newSlotLocks(),
		events: opts.Events,
		logger: opts.Logger,
		now:    opts.Now,
	}
	availability := &AvailabilityChecker{store: store}
	return &Services{
		Tables:       &TableService{core: c},
		Availability: availability,
		Bookings:     &BookingService{core: c, availability: availability, confirmations: opts.Confirmations},
		Reservations: &ReservationService{core: c, availability: availability},
		Users:        &UserService{core: c, tokens: tokens},
		Orders:       &OrderService{core: c},
		Menu:         &MenuService{core: c},
	}
}

type core struct {
	store  *repository.Store
	locks  *slotLocks
	events EventPublisher
	logger *slog.Logger
	now    func() time.Time
}

func (c *core) publish(ctx context.Context, event string, payload interface{}) {
	if c.events == nil {
		return
	}
	if err := c.events.Publish(ctx, event, payload); err != nil {
		c.logger.Warn("publish booking event failed", "event", event, "error", err)
	}
}

// fail logs an unexpected repository error and hides it behind a generic message.
func (c *core) fail(message string, err error) *Error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}
	c.logger.Error(message, "error", err)
	return internal(message, err)
}

func parseID(raw, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, validationf("invalid %s id: %q", what, raw)
	}
	return id, nil
}

func (c *core) loadBooking(ctx context.Context, rawID string) (*models.Booking, error) {
	id, err := parseID(rawID, "booking")
	if err != nil {
		return nil, err
	}
	booking, err := c.store.Bookings.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFoundf("booking %s not found", rawID)
	}
	if err != nil {
		return nil, c.fail("could not load booking", err)
	}
	return booking, nil
}

func (c *core) loadTable(ctx context.Context, id primitive.ObjectID) (*models.Table, error) {
	table, err := c.store.Tables.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFoundf("table %s not found", id.Hex())
	}
	if err != nil {
		return nil, c.fail("could not load table", err)
	}
	return table, nil
}

// releaseTableIfIdle resets the table hint when no other live booking on it
// ends after now.
func (c *core) releaseTableIfIdle(ctx context.Context, tableID, excludeID primitive.ObjectID) error {
	now := c.now().UTC()
	upcoming, err := c.store.Bookings.ListByTableFrom(ctx, tableID, helpers.NormalizeDate(now).AddDate(0, 0, -1))
	if err != nil {
		return err
	}
	for _, b := range upcoming {
		if b.ID == excludeID || b.Status == models.StatusCanceled {
			continue
		}
		w, err := helpers.WindowFor(b.BookingDate, b.StartTime)
		if err != nil {
			continue
		}
		if w.End.After(now) {
			return nil
		}
	}
	err = c.store.Tables.SetStatus(ctx, tableID, models.TableAvailable, nil)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"go-restaurant-booking/helpers"
	"go-restaurant-booking/models"
	"go-restaurant-booking/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DishRequest struct {
	DishID   string `json:"dishId"`
	Quantity int    `json:"quantity"`
}

type CreateBookingInput struct {
	UserID          string           `json:"userId"`
	TableID         string           `json:"tableId" validate:"required"`
	OrderType       models.OrderType `json:"orderType"`
	BookingDate     string           `json:"bookingDate" validate:"required"`
	StartTime       string           `json:"startTime" validate:"required"`
	Notes           string           `json:"notes"`
	ContactPhone    string           `json:"contactPhone"`
	DeliveryAddress string           `json:"deliveryAddress"`
	PickupTime      *time.Time       `json:"pickupTime"`
	Dishes          []DishRequest    `json:"dishes"`
	Name            string           `json:"name"`
	Email           string           `json:"email" validate:"omitempty,email"`
}

// UpdateBookingInput patches a booking. Nil fields keep their current value;
// Dishes always replaces the line items, a nil or empty list clears them.
type UpdateBookingInput struct {
	TableID         *string       `json:"tableId"`
	BookingDate     *string       `json:"bookingDate"`
	StartTime       *string       `json:"startTime"`
	Notes           *string       `json:"notes"`
	ContactPhone    *string       `json:"contactPhone"`
	DeliveryAddress *string       `json:"deliveryAddress"`
	Dishes          []DishRequest `json:"dishes"`
	Name            *string       `json:"name"`
	Email           *string       `json:"email"`
}

type DishPage struct {
	Total       int64         `json:"total"`
	CurrentPage int           `json:"currentPage"`
	TotalPages  int           `json:"totalPages"`
	Data        []models.Dish `json:"data"`
}

type BookingService struct {
	*core
	availability  *AvailabilityChecker
	confirmations ConfirmationSender
}

func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if err := validate.Struct(in); err != nil {
		return nil, validationf("%s", err.Error())
	}
	if in.OrderType == "" {
		in.OrderType = models.OrderDineIn
	}
	if !in.OrderType.Valid() {
		return nil, validationf("invalid order type %q", in.OrderType)
	}
	slot, err := ParseSlot(in.BookingDate, in.StartTime)
	if err != nil {
		return nil, err
	}
	tableID, err := parseID(in.TableID, "table")
	if err != nil {
		return nil, err
	}

	var userID *primitive.ObjectID
	if !blank(in.UserID) {
		id, err := parseID(in.UserID, "user")
		if err != nil {
			return nil, err
		}
		if _, err := s.store.Users.GetByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, notFoundf("user %s not found", in.UserID)
			}
			return nil, s.fail("could not load user", err)
		}
		userID = &id
	} else if blank(in.Name) || blank(in.Email) || blank(in.ContactPhone) {
		return nil, validationf("name, email and contact phone are required for guest bookings")
	}

	table, err := s.loadTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	items, err := s.resolveDishes(ctx, in.Dishes)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lockTable(tableDate{tableID, slot.Date})
	defer unlock()

	free, err := s.availability.IsAvailable(ctx, tableID, slot, primitive.NilObjectID)
	if err != nil {
		return nil, s.fail("could not check availability", err)
	}
	if !free {
		return nil, conflict(ErrAlreadyBooked)
	}

	endTime, _ := helpers.EndTimeString(slot.StartTime)
	booking := &models.Booking{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		TableID:         table.ID,
		OrderType:       in.OrderType,
		BookingDate:     slot.Date,
		StartTime:       strings.TrimSpace(slot.StartTime),
		EndTime:         endTime,
		Status:          models.StatusPending,
		Notes:           in.Notes,
		PickupTime:      in.PickupTime,
		ContactPhone:    in.ContactPhone,
		DeliveryAddress: in.DeliveryAddress,
		BookingDishes:   lineIDs(items),
		CreatedAt:       s.now().UTC(),
	}
	if err := s.store.Bookings.Create(ctx, booking); err != nil {
		return nil, s.fail("could not create booking", err)
	}

	if booking.IsGuest() {
		guest := &models.Guest{BookingID: booking.ID, Name: in.Name, Email: in.Email, ContactPhone: in.ContactPhone}
		if err := s.store.Guests.Create(ctx, guest); err != nil {
			_ = s.store.Bookings.Delete(ctx, booking.ID)
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, conflict("booking already has a guest record")
			}
			return nil, s.fail("could not create guest", err)
		}
	}
	if len(items) > 0 {
		if err := s.store.BookingDishes.ReplaceForBooking(ctx, booking.ID, items); err != nil {
			if booking.IsGuest() {
				_ = s.store.Guests.DeleteByBooking(ctx, booking.ID)
			}
			_ = s.store.BookingDishes.DeleteByBooking(ctx, booking.ID)
			_ = s.store.Bookings.Delete(ctx, booking.ID)
			return nil, s.fail("could not save booking dishes", err)
		}
	}

	w := slot.Window()
	if err := s.store.Tables.SetStatus(ctx, table.ID, models.TableReserved, &repository.TableWindow{Start: w.Start, End: w.End}); err != nil {
		s.logger.Warn("mark table reserved failed", "table", table.TableNumber, "error", err)
	}

	s.logger.Info("booking created", "booking", booking.ID.Hex(), "table", table.TableNumber, "date", helpers.FormatDate(booking.BookingDate), "start", booking.StartTime)
	s.publish(ctx, EventBookingCreated, booking)
	return booking, nil
}

// resolveDishes validates requested dishes against the catalog and snapshots their price.
func (s *BookingService) resolveDishes(ctx context.Context, requested []DishRequest) ([]models.BookingDish, error) {
	if len(requested) == 0 {
		return nil, nil
	}
	ids := make([]primitive.ObjectID, 0, len(requested))
	for _, r := range requested {
		id, err := primitive.ObjectIDFromHex(r.DishID)
		if err != nil {
			return nil, notFoundf("dish %s not found", r.DishID)
		}
		if r.Quantity <= 0 {
			return nil, validationf("quantity of dish %s must be positive", r.DishID)
		}
		ids = append(ids, id)
	}
	found, err := s.store.Dishes.FindByIDs(ctx, ids)
	if err != nil {
		return nil, s.fail("could not load dishes", err)
	}
	catalog := make(map[primitive.ObjectID]models.Dish, len(found))
	for _, d := range found {
		catalog[d.ID] = d
	}

	items := make([]models.BookingDish, 0, len(requested))
	for i, r := range requested {
		dish, ok := catalog[ids[i]]
		if !ok {
			return nil, notFoundf("dish %s not found", r.DishID)
		}
		price := dish.Price
		items = append(items, models.BookingDish{
			ID:          primitive.NewObjectID(),
			DishID:      dish.ID,
			Quantity:    r.Quantity,
			PriceAtTime: &price,
		})
	}
	return items, nil
}

func lineIDs(items []models.BookingDish) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func (s *BookingService) GetDetails(ctx context.Context, id string) (*models.BookingDetails, error) {
	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, booking)
}

func (s *BookingService) Update(ctx context.Context, id string, in UpdateBookingInput) (*models.BookingDetails, error) {
	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	oldTableID := booking.TableID
	oldDate := booking.BookingDate
	tableID := booking.TableID
	if in.TableID != nil && !blank(*in.TableID) && *in.TableID != booking.TableID.Hex() {
		if tableID, err = parseID(*in.TableID, "table"); err != nil {
			return nil, err
		}
		if _, err := s.loadTable(ctx, tableID); err != nil {
			return nil, err
		}
	}
	rawDate := helpers.FormatDate(booking.BookingDate)
	if in.BookingDate != nil && !blank(*in.BookingDate) {
		rawDate = *in.BookingDate
	}
	startTime := booking.StartTime
	if in.StartTime != nil && !blank(*in.StartTime) {
		startTime = strings.TrimSpace(*in.StartTime)
	}
	slot, err := ParseSlot(rawDate, startTime)
	if err != nil {
		return nil, err
	}
	items, err := s.resolveDishes(ctx, in.Dishes)
	if err != nil {
		return nil, err
	}

	moved := tableID != oldTableID || !slot.Date.Equal(oldDate) || startTime != booking.StartTime
	unlock := s.locks.lockTable(tableDate{oldTableID, oldDate}, tableDate{tableID, slot.Date})
	defer unlock()

	if moved {
		free, err := s.availability.IsAvailable(ctx, tableID, slot, booking.ID)
		if err != nil {
			return nil, s.fail("could not check availability", err)
		}
		if !free {
			return nil, conflict(ErrAlreadyBooked)
		}
	}

	if booking.IsGuest() {
		guest, err := s.store.Guests.FindByBooking(ctx, booking.ID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundf("guest record of booking %s not found", id)
		}
		if err != nil {
			return nil, s.fail("could not load guest", err)
		}
		patchString(&guest.Name, in.Name)
		patchString(&guest.Email, in.Email)
		patchString(&guest.ContactPhone, in.ContactPhone)
		if err := s.store.Guests.Update(ctx, guest); err != nil {
			return nil, s.fail("could not update guest", err)
		}
	}

	booking.TableID = tableID
	booking.BookingDate = slot.Date
	booking.StartTime = startTime
	booking.EndTime, _ = helpers.EndTimeString(startTime)
	patchString(&booking.Notes, in.Notes)
	if booking.IsGuest() {
		patchString(&booking.ContactPhone, in.ContactPhone)
	}
	patchString(&booking.DeliveryAddress, in.DeliveryAddress)
	booking.BookingDishes = lineIDs(items)
	if err := s.store.Bookings.Update(ctx, booking); err != nil {
		return nil, s.fail("could not update booking", err)
	}
	if err := s.store.BookingDishes.ReplaceForBooking(ctx, booking.ID, items); err != nil {
		return nil, s.fail("could not save booking dishes", err)
	}

	if moved {
		w := slot.Window()
		if err := s.store.Tables.SetStatus(ctx, tableID, models.TableReserved, &repository.TableWindow{Start: w.Start, End: w.End}); err != nil {
			s.logger.Warn("mark table reserved failed", "table", tableID.Hex(), "error", err)
		}
		if tableID != oldTableID {
			if err := s.releaseTableIfIdle(ctx, oldTableID, booking.ID); err != nil {
				s.logger.Warn("release table failed", "table", oldTableID.Hex(), "error", err)
			}
		}
	}

	s.publish(ctx, EventBookingUpdated, booking)
	return s.details(ctx, booking)
}

// patchString overwrites dst when v carries a non-blank value.
func patchString(dst *string, v *string) {
	if v != nil && !blank(*v) {
		*dst = *v
	}
}

// Cancel removes a booking together with its line items and guest record.
func (s *BookingService) Cancel(ctx context.Context, id string) error {
	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return err
	}
	if booking.Status == models.StatusCompleted {
		return statef("a completed booking cannot be canceled")
	}
	return s.remove(ctx, booking, EventBookingCanceled)
}

func (c *core) remove(ctx context.Context, booking *models.Booking, event string) error {
	unlock := c.locks.lockTable(tableDate{booking.TableID, booking.BookingDate})
	defer unlock()

	if err := c.store.BookingDishes.DeleteByBooking(ctx, booking.ID); err != nil {
		return c.fail("could not delete booking dishes", err)
	}
	if err := c.store.Guests.DeleteByBooking(ctx, booking.ID); err != nil {
		return c.fail("could not delete guest", err)
	}
	if err := c.store.Bookings.Delete(ctx, booking.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return c.fail("could not delete booking", err)
	}
	if err := c.releaseTableIfIdle(ctx, booking.TableID, booking.ID); err != nil {
		c.logger.Warn("release table failed", "table", booking.TableID.Hex(), "error", err)
	}
	c.logger.Info("booking removed", "booking", booking.ID.Hex(), "event", event)
	c.publish(ctx, event, map[string]string{"bookingId": booking.ID.Hex(), "tableId": booking.TableID.Hex()})
	return nil
}

// Confirm totals the bill from live dish prices, mails the confirmation and
// moves the booking to confirmed.
func (s *BookingService) Confirm(ctx context.Context, id string) (*models.Confirmation, error) {
	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.StatusPending {
		return nil, statef("only pending bookings can be confirmed")
	}
	confirmation, err := s.invoice(ctx, booking)
	if err != nil {
		return nil, err
	}
	if blank(confirmation.Customer.Email) {
		return nil, validationf("no email to send the confirmation to")
	}

	booking.TotalBill = confirmation.TotalBill
	booking.Status = models.StatusConfirmed
	if err := s.store.Bookings.Update(ctx, booking); err != nil {
		return nil, s.fail("could not confirm booking", err)
	}
	confirmation.Status = models.StatusConfirmed

	if s.confirmations != nil {
		if err := s.confirmations.SendBookingConfirmation(ctx, confirmation.Customer.Email, *confirmation); err != nil {
			s.logger.Error("send confirmation mail failed", "booking", id, "error", err)
		}
	}
	s.publish(ctx, EventBookingConfirmed, confirmation)
	return confirmation, nil
}

// Invoice builds the confirmation view of any booking without changing it.
func (s *BookingService) Invoice(ctx context.Context, id string) (*models.Confirmation, error) {
	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.invoice(ctx, booking)
}

func (s *BookingService) invoice(ctx context.Context, booking *models.Booking) (*models.Confirmation, error) {
	customer, guest, err := s.resolveCustomer(ctx, booking)
	if err != nil && KindOf(err) != KindNotFound {
		return nil, err
	}
	if customer == nil {
		return nil, validationf("booking %s has no customer contact", booking.ID.Hex())
	}
	details, total, err := s.assembleDetails(ctx, booking, customer, guest)
	if err != nil {
		return nil, err
	}

	confirmation := &models.Confirmation{BookingDetails: *details}
	confirmation.TotalBill = math.Round(total*100) / 100
	if len(details.Dishes) == 0 {
		confirmation.DishSummary = models.OrderAtRestaurant
	}
	order, err := s.store.Orders.FindByBooking(ctx, booking.ID)
	switch {
	case err == nil:
		confirmation.PaymentMethod = order.PaymentMethod
		confirmation.PaymentStatus = string(order.PaymentStatus)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, s.fail("could not load order", err)
	}
	return confirmation, nil
}

// AddDishes replaces the line items with the resolvable part of requested.
// Unknown dishes and non-positive quantities are skipped.
func (s *BookingService) AddDishes(ctx context.Context, id string, requested []DishRequest) ([]models.DishLine, error) {
	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	var ids []primitive.ObjectID
	for _, r := range requested {
		if dishID, err := primitive.ObjectIDFromHex(r.DishID); err == nil {
			ids = append(ids, dishID)
		}
	}
	found, err := s.store.Dishes.FindByIDs(ctx, ids)
	if err != nil {
		return nil, s.fail("could not load dishes", err)
	}
	catalog := make(map[primitive.ObjectID]models.Dish, len(found))
	for _, d := range found {
		catalog[d.ID] = d
	}

	var items []models.BookingDish
	for _, r := range requested {
		dishID, err := primitive.ObjectIDFromHex(r.DishID)
		if err != nil {
			continue
		}
		dish, ok := catalog[dishID]
		if !ok || r.Quantity <= 0 {
			continue
		}
		price := dish.Price
		items = append(items, models.BookingDish{ID: primitive.NewObjectID(), DishID: dish.ID, Quantity: r.Quantity, PriceAtTime: &price})
	}
	if err := s.store.BookingDishes.ReplaceForBooking(ctx, booking.ID, items); err != nil {
		return nil, s.fail("could not save booking dishes", err)
	}
	booking.BookingDishes = lineIDs(items)
	if err := s.store.Bookings.Update(ctx, booking); err != nil {
		return nil, s.fail("could not update booking", err)
	}
	lines, _, err := s.dishLines(ctx, items)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, EventBookingUpdated, booking)
	return lines, nil
}

func (s *BookingService) UpdateNote(ctx context.Context, id string, notes string) (*models.Booking, error) {
	if blank(notes) {
		return nil, validationf("notes must not be empty")
	}
	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	booking.Notes = strings.TrimSpace(notes)
	if err := s.store.Bookings.Update(ctx, booking); err != nil {
		return nil, s.fail("could not update notes", err)
	}
	return booking, nil
}

// ListDishes pages the dish catalog. Page and limit default to 1 and 10.
func (s *BookingService) ListDishes(ctx context.Context, category string, isAvailable *bool, page, limit int) (*DishPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	dishes, total, err := s.store.Dishes.List(ctx, repository.DishFilter{
		Category:    category,
		IsAvailable: isAvailable,
		Limit:       limit,
		Offset:      (page - 1) * limit,
	})
	if err != nil {
		return nil, s.fail("could not list dishes", err)
	}
	if dishes == nil {
		dishes = []models.Dish{}
	}
	return &DishPage{
		Total:       total,
		CurrentPage: page,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		Data:        dishes,
	}, nil
}

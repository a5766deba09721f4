package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"go-restaurant-booking/models"
	"go-restaurant-booking/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateOrderInput struct {
	BookingID     string  `json:"bookingId" validate:"required"`
	PaymentMethod string  `json:"paymentMethod" validate:"required"`
	PrepaidAmount float64 `json:"prepaidAmount" validate:"gte=0"`
}

// OrderService keeps the payment record paired with a booking. Orders start
// Pending; the expiry sweeper fails the ones that are never paid.
type OrderService struct {
	*core
}

// paymentTransitions lists the statuses each payment status may move to.
var paymentTransitions = map[models.PaymentStatus][]models.PaymentStatus{
	models.PaymentPending:   {models.PaymentDeposited, models.PaymentSuccess, models.PaymentFailure},
	models.PaymentDeposited: {models.PaymentSuccess, models.PaymentFailure},
}

func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*models.OrderView, error) {
	if err := validate.Struct(in); err != nil {
		return nil, validationf("%s", err.Error())
	}
	booking, err := s.loadBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	items, err := s.store.BookingDishes.ListByBooking(ctx, booking.ID)
	if err != nil {
		return nil, s.fail("could not load booking dishes", err)
	}
	_, total, err := s.dishLines(ctx, items)
	if err != nil {
		return nil, err
	}
	total = math.Round(total*100) / 100
	if in.PrepaidAmount > total {
		return nil, validationf("prepaid amount exceeds the order total")
	}

	bookingID := booking.ID
	order := &models.Order{
		ID:            primitive.NewObjectID(),
		UserID:        booking.UserID,
		BookingID:     &bookingID,
		TotalAmount:   total,
		PrepaidAmount: in.PrepaidAmount,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		PaymentStatus: models.PaymentPending,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.store.Orders.Create(ctx, order); err != nil {
		return nil, s.fail("could not create order", err)
	}
	s.logger.Info("order created", "order", order.ID.Hex(), "booking", bookingID.Hex(), "total", total)
	return viewOrder(order), nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.OrderView, error) {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return viewOrder(order), nil
}

// UpdatePaymentStatus applies a payment gateway result. A Success settles the
// whole amount.
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id string, status string) (*models.OrderView, error) {
	next := models.PaymentStatus(status)
	if !next.Valid() {
		return nil, validationf("invalid payment status %q", status)
	}
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canMove(order.PaymentStatus, next) {
		return nil, statef("cannot move payment from %s to %s", order.PaymentStatus, next)
	}
	prepaid := order.PrepaidAmount
	if next == models.PaymentSuccess {
		prepaid = order.TotalAmount
	}
	err = s.store.Orders.RecordPayment(ctx, order.ID, order.PaymentStatus, next, prepaid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, statef("payment status of order %s changed, retry", id)
	}
	if err != nil {
		return nil, s.fail("could not update payment status", err)
	}
	order.PaymentStatus = next
	order.PrepaidAmount = prepaid
	return viewOrder(order), nil
}

func (s *OrderService) loadOrder(ctx context.Context, rawID string) (*models.Order, error) {
	id, err := parseID(rawID, "order")
	if err != nil {
		return nil, err
	}
	order, err := s.store.Orders.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFoundf("order %s not found", rawID)
	}
	if err != nil {
		return nil, s.fail("could not load order", err)
	}
	return order, nil
}

func canMove(from, to models.PaymentStatus) bool {
	for _, s := range paymentTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func viewOrder(o *models.Order) *models.OrderView {
	remaining := o.TotalAmount - o.PrepaidAmount
	if o.PaymentStatus == models.PaymentSuccess || remaining < 0 {
		remaining = 0
	}
	return &models.OrderView{Order: *o, RemainingAmount: remaining}
}

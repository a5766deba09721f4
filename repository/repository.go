package repository

import (
	"context"
	"errors"
	"time"

	"go-restaurant-booking/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type TableFilter struct {
	Status models.TableStatus
}

type TableRepository interface {
	// Create fails with ErrDuplicate when the table number is taken.
	Create(ctx context.Context, table *models.Table) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Table, error)
	GetByNumber(ctx context.Context, number string) (*models.Table, error)
	// List returns tables sorted by number.
	List(ctx context.Context, filter TableFilter) ([]models.Table, error)
	Update(ctx context.Context, table *models.Table) error
	// SetStatus updates the advisory status; a nil window clears the cached bounds.
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.TableStatus, window *TableWindow) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type TableWindow struct {
	Start time.Time
	End   time.Time
}

// BookingFilter narrows reservation listings. Zero values match everything.
type BookingFilter struct {
	From      *time.Time
	To        *time.Time
	OrderType models.OrderType
	Statuses  []models.BookingStatus
	// When Owners is non-nil a booking must match one of the user ids or booking ids.
	Owners *OwnerFilter
}

type OwnerFilter struct {
	UserIDs    []primitive.ObjectID
	BookingIDs []primitive.ObjectID
}

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// ListByTableAndDates returns bookings of a table whose booking date is one of dates.
	ListByTableAndDates(ctx context.Context, tableID primitive.ObjectID, dates []time.Time) ([]models.Booking, error)
	// ListByDates returns bookings of every table whose booking date is one of dates.
	ListByDates(ctx context.Context, dates []time.Time) ([]models.Booking, error)
	// ListByTableFrom returns bookings of a table dated on or after from.
	ListByTableFrom(ctx context.Context, tableID primitive.ObjectID, from time.Time) ([]models.Booking, error)
	// Find returns matching bookings, newest first.
	Find(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
}

type BookingDishRepository interface {
	// ReplaceForBooking deletes every line of the booking, then inserts items.
	ReplaceForBooking(ctx context.Context, bookingID primitive.ObjectID, items []models.BookingDish) error
	ListByBooking(ctx context.Context, bookingID primitive.ObjectID) ([]models.BookingDish, error)
	ListByBookings(ctx context.Context, bookingIDs []primitive.ObjectID) ([]models.BookingDish, error)
	DeleteByBooking(ctx context.Context, bookingID primitive.ObjectID) error
}

type GuestRepository interface {
	// Create fails with ErrDuplicate when the booking already has a guest record.
	Create(ctx context.Context, guest *models.Guest) error
	FindByBooking(ctx context.Context, bookingID primitive.ObjectID) (*models.Guest, error)
	Update(ctx context.Context, guest *models.Guest) error
	DeleteByBooking(ctx context.Context, bookingID primitive.ObjectID) error
	ListByBookings(ctx context.Context, bookingIDs []primitive.ObjectID) ([]models.Guest, error)
	// SearchByName matches names case-insensitively on a substring.
	SearchByName(ctx context.Context, text string) ([]models.Guest, error)
}

type DishFilter struct {
	Category    string
	IsAvailable *bool
	Limit       int
	Offset      int
}

type DishRepository interface {
	Create(ctx context.Context, dish *models.Dish) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Dish, error)
	// FindByIDs silently omits unknown ids.
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Dish, error)
	List(ctx context.Context, filter DishFilter) ([]models.Dish, int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateTokens(ctx context.Context, id primitive.ObjectID, token, refreshToken string) error
	SearchByName(ctx context.Context, text string) ([]models.User, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByBooking(ctx context.Context, bookingID primitive.ObjectID) (*models.Order, error)
	ListPendingBefore(ctx context.Context, cutoff time.Time) ([]models.Order, error)
	// TransitionPaymentStatus moves an order from one payment status to another.
	// It returns ErrNotFound when the order is no longer in the from status.
	TransitionPaymentStatus(ctx context.Context, id primitive.ObjectID, from, to models.PaymentStatus) error
	// RecordPayment is TransitionPaymentStatus that also stores the prepaid amount.
	RecordPayment(ctx context.Context, id primitive.ObjectID, from, to models.PaymentStatus, prepaid float64) error
}

// Store bundles every repository the services depend on.
type Store struct {
	Tables        TableRepository
	Bookings      BookingRepository
	BookingDishes BookingDishRepository
	Guests        GuestRepository
	Dishes        DishRepository
	Users         UserRepository
	Orders        OrderRepository
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCooking   BookingStatus = "cooking"
	StatusReady     BookingStatus = "ready"
	StatusCompleted BookingStatus = "completed"
	StatusCanceled  BookingStatus = "canceled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCooking, StatusReady, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

type OrderType string

const (
	OrderDineIn   OrderType = "dine-in"
	OrderDelivery OrderType = "delivery"
	OrderPickup   OrderType = "pickup"
)

func (t OrderType) Valid() bool {
	return t == OrderDineIn || t == OrderDelivery || t == OrderPickup
}

// Booking reserves one table for a fixed service window starting at StartTime.
// EndTime is a display cache; the window is always derived from BookingDate and StartTime.
type Booking struct {
	ID              primitive.ObjectID   `bson:"_id" json:"_id"`
	UserID          *primitive.ObjectID  `bson:"user_id" json:"userId"`
	TableID         primitive.ObjectID   `bson:"table_id" json:"tableId"`
	OrderType       OrderType            `bson:"order_type" json:"orderType"`
	BookingDate     time.Time            `bson:"booking_date" json:"bookingDate"`
	StartTime       string               `bson:"start_time" json:"startTime"`
	EndTime         string               `bson:"end_time" json:"endTime"`
	Status          BookingStatus        `bson:"status" json:"status"`
	Notes           string               `bson:"notes" json:"notes"`
	PickupTime      *time.Time           `bson:"pickup_time,omitempty" json:"pickupTime,omitempty"`
	ContactPhone    string               `bson:"contact_phone" json:"contactPhone"`
	DeliveryAddress string               `bson:"delivery_address" json:"deliveryAddress"`
	TotalBill       float64              `bson:"total_bill" json:"totalBill"`
	BookingDishes   []primitive.ObjectID `bson:"booking_dishes" json:"bookingDishes"`
	CreatedAt       time.Time            `bson:"created_at" json:"createdAt"`
}

// IsGuest reports whether the booking has no owning identity.
func (b *Booking) IsGuest() bool {
	return b.UserID == nil || b.UserID.IsZero()
}

// BookingDish is one (dish, quantity) line attached to a booking.
type BookingDish struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	BookingID   primitive.ObjectID `bson:"booking_id" json:"bookingId"`
	DishID      primitive.ObjectID `bson:"dish_id" json:"dishId"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	PriceAtTime *float64           `bson:"price_at_time,omitempty" json:"priceAtTime,omitempty"`
}

// Guest holds contact details for a booking made without an identity.
type Guest struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	BookingID    primitive.ObjectID `bson:"booking_id" json:"bookingId"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	ContactPhone string             `bson:"contact_phone" json:"contactPhone"`
}

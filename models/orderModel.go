package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentDeposited PaymentStatus = "Deposited"
	PaymentSuccess   PaymentStatus = "Success"
	PaymentFailure   PaymentStatus = "Failure"
)

// Order is the payment wrapper paired with a dine-in booking.
type Order struct {
	ID            primitive.ObjectID  `bson:"_id" json:"_id"`
	UserID        *primitive.ObjectID `bson:"user_id,omitempty" json:"userId,omitempty"`
	BookingID     *primitive.ObjectID `bson:"booking_id,omitempty" json:"bookingId,omitempty"`
	TotalAmount   float64             `bson:"total_amount" json:"totalAmount"`
	PrepaidAmount float64             `bson:"prepaid_amount" json:"prepaidAmount"`
	PaymentMethod string              `bson:"payment_method" json:"paymentMethod"`
	PaymentStatus PaymentStatus       `bson:"payment_status" json:"paymentStatus"`
	CreatedAt     time.Time           `bson:"created_at" json:"createdAt"`
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentDeposited, PaymentSuccess, PaymentFailure:
		return true
	}
	return false
}

// OrderView is an order with the amount still owed.
type OrderView struct {
	Order
	RemainingAmount float64 `json:"remainingAmount"`
}

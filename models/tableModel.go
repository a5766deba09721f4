package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TableStatus string

const (
	TableAvailable   TableStatus = "available"
	TableReserved    TableStatus = "reserved"
	TableUnavailable TableStatus = "unavailable"
	TableOccupied    TableStatus = "occupied"
)

func (s TableStatus) Valid() bool {
	switch s {
	case TableAvailable, TableReserved, TableUnavailable, TableOccupied:
		return true
	}
	return false
}

// InUse reports whether a table with this status must not be removed.
func (s TableStatus) InUse() bool {
	return s == TableOccupied || s == TableReserved
}

// Table status and the cached window are hints only; bookings are the source of truth.
type Table struct {
	ID                primitive.ObjectID `bson:"_id" json:"_id"`
	TableNumber       string             `bson:"table_number" json:"tableNumber" validate:"required"`
	Capacity          int                `bson:"capacity" json:"capacity" validate:"required,gt=0"`
	Status            TableStatus        `bson:"status" json:"status"`
	LastBookedAt      *time.Time         `bson:"last_booked_at" json:"lastBookedAt"`
	LastBookedEndTime *time.Time         `bson:"last_booked_end_time" json:"lastBookedEndTime"`
	Created_at        time.Time          `bson:"created_at" json:"created_at"`
	Updated_at        time.Time          `bson:"updated_at" json:"updated_at"`
}

// TableView is a table annotated with availability for a requested slot.
type TableView struct {
	Table
	IsAvailable bool `json:"isAvailable"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the identity record that owns non-guest bookings.
type User struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Fullname    string             `bson:"fullname" json:"fullname" validate:"required,min=2,max=100"`
	Password    string             `bson:"password" json:"password,omitempty" validate:"required,min=6"`
	Email       string             `bson:"email" json:"email" validate:"email,required"`
	PhoneNumber string             `bson:"phone_number" json:"phoneNumber" validate:"required"`
	Role        string             `bson:"role" json:"role" validate:"required,eq=ADMIN|eq=STAFF|eq=CHEF|eq=CUSTOMER"`

	Token         string    `bson:"token" json:"token,omitempty"`
	Refresh_Token string    `bson:"refresh_token" json:"refresh_token,omitempty"`
	Created_at    time.Time `bson:"created_at" json:"created_at"`
	Updated_at    time.Time `bson:"updated_at" json:"updated_at"`
}

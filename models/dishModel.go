package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Dish struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Category    string             `bson:"category" json:"category"`
	Description string             `bson:"description" json:"description"`
	ImageUrl    string             `bson:"image_url" json:"imageUrl"`
	Price       float64            `bson:"price" json:"price" validate:"gte=0"`
	IsAvailable bool               `bson:"is_available" json:"isAvailable"`
}

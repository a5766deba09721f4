package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	TableCollection       = "table"
	BookingCollection     = "booking"
	BookingDishCollection = "bookingDish"
	GuestCollection       = "guest"
	OrderCollection       = "order"
	DishCollection        = "dish"
	UserCollection        = "user"
)

// Connect dials MongoDB and pings the primary.
func Connect(ctx context.Context, uri string, logger *slog.Logger) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	logger.Info("connected to MongoDB")
	return client, nil
}

func OpenCollection(client *mongo.Client, dbName string, collectionName string) *mongo.Collection {
	return client.Database(dbName).Collection(collectionName)
}

// EnsureIndexes creates the unique and lookup indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		TableCollection: {
			{Keys: bson.D{{Key: "table_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		GuestCollection: {
			{Keys: bson.D{{Key: "booking_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		BookingCollection: {
			{Keys: bson.D{{Key: "table_id", Value: 1}, {Key: "booking_date", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		BookingDishCollection: {
			{Keys: bson.D{{Key: "booking_id", Value: 1}}},
		},
		OrderCollection: {
			{Keys: bson.D{{Key: "payment_status", Value: 1}, {Key: "created_at", Value: 1}}},
			{Keys: bson.D{{Key: "booking_id", Value: 1}}},
		},
		UserCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

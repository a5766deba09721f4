package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-restaurant-booking/database"
	"go-restaurant-booking/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongoStore wires every repository to its collection in the dbName database.
func NewMongoStore(client *mongo.Client, dbName string) *Store {
	open := func(name string) *mongo.Collection {
		return database.OpenCollection(client, dbName, name)
	}
	return &Store{
		Tables:        &mongoTables{col: open(database.TableCollection)},
		Bookings:      &mongoBookings{col: open(database.BookingCollection)},
		BookingDishes: &mongoBookingDishes{col: open(database.BookingDishCollection)},
		Guests:        &mongoGuests{col: open(database.GuestCollection)},
		Dishes:        &mongoDishes{col: open(database.DishCollection)},
		Users:         &mongoUsers{col: open(database.UserCollection)},
		Orders:        &mongoOrders{col: open(database.OrderCollection)},
	}
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func duplicate(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

type mongoTables struct {
	col *mongo.Collection
}

func (r *mongoTables) Create(ctx context.Context, table *models.Table) error {
	if table.ID.IsZero() {
		table.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, table); err != nil {
		return duplicate(err)
	}
	return nil
}

func (r *mongoTables) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Table, error) {
	var table models.Table
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&table); err != nil {
		return nil, notFound(err)
	}
	return &table, nil
}

func (r *mongoTables) GetByNumber(ctx context.Context, number string) (*models.Table, error) {
	var table models.Table
	if err := r.col.FindOne(ctx, bson.M{"table_number": number}).Decode(&table); err != nil {
		return nil, notFound(err)
	}
	return &table, nil
}

func (r *mongoTables) List(ctx context.Context, filter TableFilter) ([]models.Table, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	cursor, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "table_number", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var tables []models.Table
	if err := cursor.All(ctx, &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *mongoTables) Update(ctx context.Context, table *models.Table) error {
	var updateObj primitive.D
	updateObj = append(updateObj, bson.E{Key: "table_number", Value: table.TableNumber})
	updateObj = append(updateObj, bson.E{Key: "capacity", Value: table.Capacity})
	updateObj = append(updateObj, bson.E{Key: "status", Value: table.Status})
	updateObj = append(updateObj, bson.E{Key: "updated_at", Value: table.Updated_at})

	result, err := r.col.UpdateOne(ctx, bson.M{"_id": table.ID}, bson.D{{Key: "$set", Value: updateObj}})
	if err != nil {
		return duplicate(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoTables) SetStatus(ctx context.Context, id primitive.ObjectID, status models.TableStatus, window *TableWindow) error {
	updateObj := primitive.D{
		{Key: "status", Value: status},
		{Key: "updated_at", Value: time.Now().UTC()},
	}
	if window != nil {
		updateObj = append(updateObj, bson.E{Key: "last_booked_at", Value: window.Start})
		updateObj = append(updateObj, bson.E{Key: "last_booked_end_time", Value: window.End})
	} else {
		updateObj = append(updateObj, bson.E{Key: "last_booked_at", Value: nil})
		updateObj = append(updateObj, bson.E{Key: "last_booked_end_time", Value: nil})
	}
	result, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.D{{Key: "$set", Value: updateObj}})
	if err != nil {
		return fmt.Errorf("set table status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoTables) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

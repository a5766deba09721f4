package repository

import (
	"context"
	"time"

	"go-restaurant-booking/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoDishes struct {
	col *mongo.Collection
}

func (r *mongoDishes) Create(ctx context.Context, dish *models.Dish) error {
	if dish.ID.IsZero() {
		dish.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, dish)
	return err
}

func (r *mongoDishes) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Dish, error) {
	var dish models.Dish
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&dish); err != nil {
		return nil, notFound(err)
	}
	return &dish, nil
}

func (r *mongoDishes) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Dish, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var dishes []models.Dish
	if err := cursor.All(ctx, &dishes); err != nil {
		return nil, err
	}
	return dishes, nil
}

func (r *mongoDishes) List(ctx context.Context, filter DishFilter) ([]models.Dish, int64, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.IsAvailable != nil {
		query["is_available"] = *filter.IsAvailable
	}
	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	if filter.Offset > 0 {
		opts.SetSkip(int64(filter.Offset))
	}
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	var dishes []models.Dish
	if err := cursor.All(ctx, &dishes); err != nil {
		return nil, 0, err
	}
	return dishes, total, nil
}

type mongoOrders struct {
	col *mongo.Collection
}

func (r *mongoOrders) Create(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, order)
	return err
}

func (r *mongoOrders) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func (r *mongoOrders) FindByBooking(ctx context.Context, bookingID primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if err := r.col.FindOne(ctx, bson.M{"booking_id": bookingID}, opts).Decode(&order); err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func (r *mongoOrders) ListPendingBefore(ctx context.Context, cutoff time.Time) ([]models.Order, error) {
	cursor, err := r.col.Find(ctx, bson.M{
		"payment_status": models.PaymentPending,
		"created_at":     bson.M{"$lt": cutoff},
	})
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *mongoOrders) TransitionPaymentStatus(ctx context.Context, id primitive.ObjectID, from, to models.PaymentStatus) error {
	return r.transition(ctx, id, from, bson.D{{Key: "payment_status", Value: to}})
}

func (r *mongoOrders) RecordPayment(ctx context.Context, id primitive.ObjectID, from, to models.PaymentStatus, prepaid float64) error {
	return r.transition(ctx, id, from, bson.D{
		{Key: "payment_status", Value: to},
		{Key: "prepaid_amount", Value: prepaid},
	})
}

func (r *mongoOrders) transition(ctx context.Context, id primitive.ObjectID, from models.PaymentStatus, set bson.D) error {
	result, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "payment_status": from},
		bson.D{{Key: "$set", Value: set}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

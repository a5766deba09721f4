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

type mongoBookings struct {
	col *mongo.Collection
}

func (r *mongoBookings) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, booking)
	return err
}

func (r *mongoBookings) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var booking models.Booking
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
		return nil, notFound(err)
	}
	return &booking, nil
}

func (r *mongoBookings) Update(ctx context.Context, booking *models.Booking) error {
	updateObj := primitive.D{
		{Key: "user_id", Value: booking.UserID},
		{Key: "table_id", Value: booking.TableID},
		{Key: "order_type", Value: booking.OrderType},
		{Key: "booking_date", Value: booking.BookingDate},
		{Key: "start_time", Value: booking.StartTime},
		{Key: "end_time", Value: booking.EndTime},
		{Key: "status", Value: booking.Status},
		{Key: "notes", Value: booking.Notes},
		{Key: "pickup_time", Value: booking.PickupTime},
		{Key: "contact_phone", Value: booking.ContactPhone},
		{Key: "delivery_address", Value: booking.DeliveryAddress},
		{Key: "total_bill", Value: booking.TotalBill},
		{Key: "booking_dishes", Value: booking.BookingDishes},
	}
	result, err := r.col.UpdateOne(ctx, bson.M{"_id": booking.ID}, bson.D{{Key: "$set", Value: updateObj}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoBookings) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoBookings) ListByTableAndDates(ctx context.Context, tableID primitive.ObjectID, dates []time.Time) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"table_id": tableID, "booking_date": bson.M{"$in": dates}}, nil)
}

func (r *mongoBookings) ListByDates(ctx context.Context, dates []time.Time) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"booking_date": bson.M{"$in": dates}}, nil)
}

func (r *mongoBookings) ListByTableFrom(ctx context.Context, tableID primitive.ObjectID, from time.Time) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"table_id": tableID, "booking_date": bson.M{"$gte": from}}, nil)
}

func (r *mongoBookings) Find(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	query := bson.M{}
	dateRange := bson.M{}
	if filter.From != nil {
		dateRange["$gte"] = *filter.From
	}
	if filter.To != nil {
		dateRange["$lte"] = *filter.To
	}
	if len(dateRange) > 0 {
		query["booking_date"] = dateRange
	}
	if filter.OrderType != "" {
		query["order_type"] = filter.OrderType
	}
	if len(filter.Statuses) > 0 {
		query["status"] = bson.M{"$in": filter.Statuses}
	}
	if filter.Owners != nil {
		query["$or"] = bson.A{
			bson.M{"user_id": bson.M{"$in": filter.Owners.UserIDs}},
			bson.M{"_id": bson.M{"$in": filter.Owners.BookingIDs}},
		}
	}
	return r.find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (r *mongoBookings) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]models.Booking, error) {
	if opts == nil {
		opts = options.Find()
	}
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

type mongoBookingDishes struct {
	col *mongo.Collection
}

func (r *mongoBookingDishes) ReplaceForBooking(ctx context.Context, bookingID primitive.ObjectID, items []models.BookingDish) error {
	if _, err := r.col.DeleteMany(ctx, bson.M{"booking_id": bookingID}); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(items))
	for i := range items {
		if items[i].ID.IsZero() {
			items[i].ID = primitive.NewObjectID()
		}
		items[i].BookingID = bookingID
		docs = append(docs, items[i])
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}

func (r *mongoBookingDishes) ListByBooking(ctx context.Context, bookingID primitive.ObjectID) ([]models.BookingDish, error) {
	return r.find(ctx, bson.M{"booking_id": bookingID})
}

func (r *mongoBookingDishes) ListByBookings(ctx context.Context, bookingIDs []primitive.ObjectID) ([]models.BookingDish, error) {
	if len(bookingIDs) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"booking_id": bson.M{"$in": bookingIDs}})
}

func (r *mongoBookingDishes) DeleteByBooking(ctx context.Context, bookingID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"booking_id": bookingID})
	return err
}

func (r *mongoBookingDishes) find(ctx context.Context, query bson.M) ([]models.BookingDish, error) {
	cursor, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	var items []models.BookingDish
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

package repository

import (
	"context"
	"regexp"
	"time"

	"go-restaurant-booking/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func containsPattern(text string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
}

type mongoGuests struct {
	col *mongo.Collection
}

func (r *mongoGuests) Create(ctx context.Context, guest *models.Guest) error {
	if guest.ID.IsZero() {
		guest.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, guest); err != nil {
		return duplicate(err)
	}
	return nil
}

func (r *mongoGuests) FindByBooking(ctx context.Context, bookingID primitive.ObjectID) (*models.Guest, error) {
	var guest models.Guest
	if err := r.col.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&guest); err != nil {
		return nil, notFound(err)
	}
	return &guest, nil
}

func (r *mongoGuests) Update(ctx context.Context, guest *models.Guest) error {
	updateObj := primitive.D{
		{Key: "name", Value: guest.Name},
		{Key: "email", Value: guest.Email},
		{Key: "contact_phone", Value: guest.ContactPhone},
	}
	result, err := r.col.UpdateOne(ctx, bson.M{"_id": guest.ID}, bson.D{{Key: "$set", Value: updateObj}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoGuests) DeleteByBooking(ctx context.Context, bookingID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"booking_id": bookingID})
	return err
}

func (r *mongoGuests) ListByBookings(ctx context.Context, bookingIDs []primitive.ObjectID) ([]models.Guest, error) {
	if len(bookingIDs) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"booking_id": bson.M{"$in": bookingIDs}})
}

func (r *mongoGuests) SearchByName(ctx context.Context, text string) ([]models.Guest, error) {
	return r.find(ctx, bson.M{"name": containsPattern(text)})
}

func (r *mongoGuests) find(ctx context.Context, query bson.M) ([]models.Guest, error) {
	cursor, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	var guests []models.Guest
	if err := cursor.All(ctx, &guests); err != nil {
		return nil, err
	}
	return guests, nil
}

type mongoUsers struct {
	col *mongo.Collection
}

func (r *mongoUsers) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, user); err != nil {
		return duplicate(err)
	}
	return nil
}

func (r *mongoUsers) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *mongoUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *mongoUsers) UpdateTokens(ctx context.Context, id primitive.ObjectID, token, refreshToken string) error {
	updateObj := primitive.D{
		{Key: "token", Value: token},
		{Key: "refresh_token", Value: refreshToken},
		{Key: "updated_at", Value: time.Now().UTC()},
	}
	result, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.D{{Key: "$set", Value: updateObj}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoUsers) SearchByName(ctx context.Context, text string) ([]models.User, error) {
	cursor, err := r.col.Find(ctx, bson.M{"fullname": containsPattern(text)})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

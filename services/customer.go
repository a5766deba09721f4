package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-restaurant-booking/helpers"
	"go-restaurant-booking/models"
	"go-restaurant-booking/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const unknownDish = "Unknown dish"

// resolveCustomer returns the contact of a booking from the identity store, or
// from its guest record when the booking has no identity.
func (c *core) resolveCustomer(ctx context.Context, b *models.Booking) (*models.Customer, *models.Guest, error) {
	if !b.IsGuest() {
		user, err := c.store.Users.GetByID(ctx, *b.UserID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, notFoundf("user %s of booking %s not found", b.UserID.Hex(), b.ID.Hex())
		}
		if err != nil {
			return nil, nil, c.fail("could not load user", err)
		}
		return &models.Customer{Name: user.Fullname, Email: user.Email, ContactPhone: user.PhoneNumber}, nil, nil
	}
	guest, err := c.store.Guests.FindByBooking(ctx, b.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, notFoundf("guest record of booking %s not found", b.ID.Hex())
	}
	if err != nil {
		return nil, nil, c.fail("could not load guest", err)
	}
	return &models.Customer{Name: guest.Name, Email: guest.Email, ContactPhone: guest.ContactPhone}, guest, nil
}

// dishLines joins line items with the live catalog and totals quantity × live price.
// Items whose dish left the catalog count as zero.
func (c *core) dishLines(ctx context.Context, items []models.BookingDish) ([]models.DishLine, float64, error) {
	lines := make([]models.DishLine, 0, len(items))
	if len(items) == 0 {
		return lines, 0, nil
	}
	ids := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.DishID)
	}
	found, err := c.store.Dishes.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, c.fail("could not load dishes", err)
	}
	catalog := make(map[primitive.ObjectID]models.Dish, len(found))
	for _, d := range found {
		catalog[d.ID] = d
	}

	var total float64
	for _, item := range items {
		line := models.DishLine{DishID: item.DishID.Hex(), Name: unknownDish, Quantity: item.Quantity}
		if d, ok := catalog[item.DishID]; ok {
			line.Name = d.Name
			line.Price = d.Price
			line.Category = d.Category
			line.ImageUrl = d.ImageUrl
			line.IsAvailable = d.IsAvailable
		}
		total += float64(item.Quantity) * line.Price
		lines = append(lines, line)
	}
	return lines, total, nil
}

func (c *core) assembleDetails(ctx context.Context, b *models.Booking, customer *models.Customer, guest *models.Guest) (*models.BookingDetails, float64, error) {
	table, err := c.loadTable(ctx, b.TableID)
	if err != nil {
		return nil, 0, err
	}
	items, err := c.store.BookingDishes.ListByBooking(ctx, b.ID)
	if err != nil {
		return nil, 0, c.fail("could not load booking dishes", err)
	}
	lines, total, err := c.dishLines(ctx, items)
	if err != nil {
		return nil, 0, err
	}
	details := &models.BookingDetails{
		ID:              b.ID.Hex(),
		Table:           table,
		OrderType:       b.OrderType,
		BookingDate:     helpers.FormatDate(b.BookingDate),
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		Status:          b.Status,
		Notes:           b.Notes,
		ContactPhone:    b.ContactPhone,
		DeliveryAddress: b.DeliveryAddress,
		TotalBill:       b.TotalBill,
		CreatedAt:       b.CreatedAt.UTC().Format(time.RFC3339),
		Dishes:          lines,
		Customer:        customer,
		Guest:           guest,
	}
	if !b.IsGuest() {
		details.UserID = b.UserID.Hex()
	}
	return details, total, nil
}

// details builds the denormalised view of a booking.
func (c *core) details(ctx context.Context, b *models.Booking) (*models.BookingDetails, error) {
	customer, guest, err := c.resolveCustomer(ctx, b)
	if err != nil {
		return nil, err
	}
	d, _, err := c.assembleDetails(ctx, b, customer, guest)
	return d, err
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

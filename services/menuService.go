package services

import (
	"context"
	"errors"
	"strings"

	"go-restaurant-booking/models"
	"go-restaurant-booking/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MenuService maintains the dish catalog bookings draw their prices from.
type MenuService struct {
	*core
}

func (s *MenuService) Create(ctx context.Context, dish models.Dish) (*models.Dish, error) {
	dish.Name = strings.TrimSpace(dish.Name)
	dish.Category = strings.TrimSpace(dish.Category)
	if err := validate.Struct(dish); err != nil {
		return nil, validationf("%s", err.Error())
	}
	dish.ID = primitive.NewObjectID()
	if err := s.store.Dishes.Create(ctx, &dish); err != nil {
		return nil, s.fail("could not create dish", err)
	}
	return &dish, nil
}

func (s *MenuService) Get(ctx context.Context, rawID string) (*models.Dish, error) {
	id, err := parseID(rawID, "dish")
	if err != nil {
		return nil, err
	}
	dish, err := s.store.Dishes.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFoundf("dish %s not found", rawID)
	}
	if err != nil {
		return nil, s.fail("could not load dish", err)
	}
	return dish, nil
}

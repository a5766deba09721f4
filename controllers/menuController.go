package controllers

import (
	"net/http"

	"go-restaurant-booking/models"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) GetDish() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		dish, err := ctl.svc.Menu.Get(ctx, c.Param("dish_id"))
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "dish fetched", "data": dish})
	}
}

func (ctl *Controller) CreateDish() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var dish models.Dish
		if err := c.ShouldBindJSON(&dish); err != nil {
			badRequest(c, err)
			return
		}
		created, err := ctl.svc.Menu.Create(ctx, dish)
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "dish created", "data": created})
	}
}

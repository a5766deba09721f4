package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"go-restaurant-booking/services"

	"github.com/gin-gonic/gin"
)

// GetDishes pages the catalog: ?category=&isAvailable=&page=&limit=.
func (ctl *Controller) GetDishes() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if err != nil || limit < 1 {
			limit = 10
		}
		var isAvailable *bool
		if raw, ok := c.GetQuery("isAvailable"); ok {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				badRequest(c, fmt.Errorf("invalid isAvailable %q", raw))
				return
			}
			isAvailable = &v
		}

		result, err := ctl.svc.Bookings.ListDishes(ctx, c.Query("category"), isAvailable, page, limit)
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"message":     "dishes fetched",
			"total":       result.Total,
			"currentPage": result.CurrentPage,
			"totalPages":  result.TotalPages,
			"data":        result.Data,
		})
	}
}

// AddDishes replaces the dish lines of a booking, skipping unknown dishes.
func (ctl *Controller) AddDishes() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var body struct {
			Dishes []services.DishRequest `json:"dishes"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err)
			return
		}
		lines, err := ctl.svc.Bookings.AddDishes(ctx, c.Param("id"), body.Dishes)
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "dishes added", "data": lines})
	}
}

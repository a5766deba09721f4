package routes

import (
	controller "go-restaurant-booking/controllers"
	"go-restaurant-booking/helpers"
	"go-restaurant-booking/middleware"

	"github.com/gin-gonic/gin"
)

// BookingRoutes serves both guests and signed-in customers.
func BookingRoutes(incomingRoutes *gin.Engine, ctl *controller.Controller, tokens *helpers.TokenHelper) {
	bookings := incomingRoutes.Group("/bookings", middleware.OptionalAuthentication(tokens))
	bookings.GET("/available-tables", ctl.GetAvailableTables())
	bookings.POST("/check-table", ctl.CheckTable())
	bookings.GET("/get-dishes", ctl.GetDishes())
	bookings.POST("", ctl.CreateBooking())
	bookings.GET("/:id", ctl.GetBooking())
	bookings.PUT("/:id", ctl.UpdateBooking())
	bookings.DELETE("/:id", ctl.CancelBooking())
	bookings.PUT("/:id/confirm", ctl.ConfirmBooking())
	bookings.PUT("/:id/update-note", ctl.UpdateNote())
	bookings.PUT("/:id/add-dishes", ctl.AddDishes())
}

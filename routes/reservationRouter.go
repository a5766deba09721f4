package routes

import (
	controller "go-restaurant-booking/controllers"
	"go-restaurant-booking/helpers"
	"go-restaurant-booking/middleware"

	"github.com/gin-gonic/gin"
)

func ReservationRoutes(incomingRoutes *gin.Engine, ctl *controller.Controller, tokens *helpers.TokenHelper) {
	reservations := incomingRoutes.Group("/reservations", middleware.Authentication(tokens))
	reservations.GET("", ctl.ListReservations(false, false))
	reservations.GET("/staff", ctl.ListReservations(true, false))
	reservations.GET("/filter", ctl.ListReservations(false, true))
	reservations.GET("/filters", ctl.ListReservations(true, true))
	reservations.GET("/available", ctl.GetAvailableTables())
	reservations.GET("/:id", ctl.GetReservation())
	reservations.PUT("/:id/status", ctl.UpdateReservationStatus())
	reservations.PUT("/:id/table", ctl.ReassignTable())
	reservations.DELETE("/:id", ctl.DeleteReservation())
}

package routes

import (
	controller "go-restaurant-booking/controllers"
	"go-restaurant-booking/helpers"

	"github.com/gin-gonic/gin"
)

// Register mounts every resource on the engine.
func Register(router *gin.Engine, ctl *controller.Controller, tokens *helpers.TokenHelper) {
	UserRoutes(router, ctl, tokens)
	BookingRoutes(router, ctl, tokens)
	ReservationRoutes(router, ctl, tokens)
	TableRoutes(router, ctl, tokens)
	MenuRoutes(router, ctl, tokens)
	OrderRoutes(router, ctl, tokens)
	InvoiceRoutes(router, ctl, tokens)
}

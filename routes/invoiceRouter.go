package routes

import (
	controller "go-restaurant-booking/controllers"
	"go-restaurant-booking/helpers"
	"go-restaurant-booking/middleware"

	"github.com/gin-gonic/gin"
)

func InvoiceRoutes(incomingRoutes *gin.Engine, ctl *controller.Controller, tokens *helpers.TokenHelper) {
	incomingRoutes.GET("/invoices/:booking_id", middleware.Authentication(tokens), ctl.GetInvoice())
}

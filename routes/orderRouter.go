package routes

import (
	controller "go-restaurant-booking/controllers"
	"go-restaurant-booking/helpers"
	"go-restaurant-booking/middleware"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.Engine, ctl *controller.Controller, tokens *helpers.TokenHelper) {
	incomingRoutes.POST("/orders", middleware.OptionalAuthentication(tokens), ctl.CreateOrder())
	incomingRoutes.GET("/orders/:order_id", middleware.OptionalAuthentication(tokens), ctl.GetOrder())
	incomingRoutes.PATCH("/orders/:order_id", middleware.Authentication(tokens), ctl.UpdateOrder())
}

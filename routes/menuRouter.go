package routes

import (
	controller "go-restaurant-booking/controllers"
	"go-restaurant-booking/helpers"
	"go-restaurant-booking/middleware"

	"github.com/gin-gonic/gin"
)

func MenuRoutes(incomingRoutes *gin.Engine, ctl *controller.Controller, tokens *helpers.TokenHelper) {
	incomingRoutes.GET("/dishes", ctl.GetDishes())
	incomingRoutes.GET("/dishes/:dish_id", ctl.GetDish())
	incomingRoutes.POST("/dishes", middleware.Authentication(tokens), ctl.CreateDish())
}

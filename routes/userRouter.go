package routes

import (
	controller "go-restaurant-booking/controllers"
	"go-restaurant-booking/helpers"
	"go-restaurant-booking/middleware"

	"github.com/gin-gonic/gin"
)

func UserRoutes(incomingRoutes *gin.Engine, ctl *controller.Controller, tokens *helpers.TokenHelper) {
	incomingRoutes.POST("/users/signup", ctl.SignUp())
	incomingRoutes.POST("/users/login", ctl.Login())
	incomingRoutes.GET("/users/:user_id", middleware.Authentication(tokens), ctl.GetUser())
	incomingRoutes.GET("/ws", ctl.HandleWebSocket())
}

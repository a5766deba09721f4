package routes

import (
	controller "go-restaurant-booking/controllers"
	"go-restaurant-booking/helpers"
	"go-restaurant-booking/middleware"

	"github.com/gin-gonic/gin"
)

func TableRoutes(incomingRoutes *gin.Engine, ctl *controller.Controller, tokens *helpers.TokenHelper) {
	incomingRoutes.GET("/tables", ctl.GetTables())
	incomingRoutes.GET("/tables/available-numbers", ctl.GetAvailableNumbers())
	incomingRoutes.GET("/tables/:tableNumber", ctl.GetTable())

	auth := middleware.Authentication(tokens)
	incomingRoutes.POST("/tables", auth, ctl.CreateTable())
	incomingRoutes.PUT("/tables/:tableNumber", auth, ctl.UpdateTable())
	incomingRoutes.DELETE("/tables/:tableNumber", auth, ctl.DeleteTable())
}

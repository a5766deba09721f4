package controllers

import (
	"net/http"

	"go-restaurant-booking/middleware"
	"go-restaurant-booking/models"
	"go-restaurant-booking/services"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) SignUp() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var user models.User
		if err := c.ShouldBindJSON(&user); err != nil {
			badRequest(c, err)
			return
		}
		created, err := ctl.svc.Users.SignUp(ctx, user)
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "user created", "data": created})
	}
}

func (ctl *Controller) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var in services.LoginInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}
		user, err := ctl.svc.Users.Login(ctx, in)
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "logged in", "data": user})
	}
}

// GetUser returns a profile. Customers may only read their own.
func (ctl *Controller) GetUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		id := c.Param("user_id")
		if c.GetString(middleware.ContextRole) == "CUSTOMER" && c.GetString(middleware.ContextUID) != id {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "not allowed to read this user"})
			return
		}
		user, err := ctl.svc.Users.Get(ctx, id)
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "user fetched", "data": user})
	}
}

// HandleWebSocket subscribes the caller to booking events.
func (ctl *Controller) HandleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ctl.ws == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "realtime updates are disabled"})
			return
		}
		ctl.ws.Serve(c.Writer, c.Request)
	}
}

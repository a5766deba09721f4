package controllers

import (
	"net/http"

	"go-restaurant-booking/services"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) CreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var in services.CreateOrderInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}
		order, err := ctl.svc.Orders.Create(ctx, in)
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "order created", "data": order})
	}
}

func (ctl *Controller) GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		order, err := ctl.svc.Orders.Get(ctx, c.Param("order_id"))
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "order fetched", "data": order})
	}
}

// UpdateOrder records a payment result for the order.
func (ctl *Controller) UpdateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var body struct {
			PaymentStatus string `json:"paymentStatus" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err)
			return
		}
		order, err := ctl.svc.Orders.UpdatePaymentStatus(ctx, c.Param("order_id"), body.PaymentStatus)
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "order status updated", "data": order})
	}
}

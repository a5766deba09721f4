package controllers

import (
	"net/http"

	"go-restaurant-booking/services"

	"github.com/gin-gonic/gin"
)

// ListReservations serves the reservation lists. staffView restricts the list
// to confirmed and canceled bookings; filtered honours the query filters.
func (ctl *Controller) ListReservations(staffView, filtered bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var q services.ReservationQuery
		if filtered {
			if err := c.ShouldBindQuery(&q); err != nil {
				badRequest(c, err)
				return
			}
		}
		q.StaffView = staffView

		reservations, err := ctl.svc.Reservations.ListReservations(ctx, q)
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "reservations fetched", "data": reservations})
	}
}

func (ctl *Controller) GetReservation() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		details, err := ctl.svc.Reservations.GetDetails(ctx, c.Param("id"))
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "reservation fetched", "data": details})
	}
}

func (ctl *Controller) UpdateReservationStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var body struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err)
			return
		}
		booking, err := ctl.svc.Reservations.UpdateStatus(ctx, c.Param("id"), body.Status)
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "reservation status updated", "data": booking})
	}
}

func (ctl *Controller) ReassignTable() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var body struct {
			TableID string `json:"tableId"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err)
			return
		}
		booking, err := ctl.svc.Reservations.ReassignTable(ctx, c.Param("id"), body.TableID)
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "reservation table updated", "data": booking})
	}
}

func (ctl *Controller) DeleteReservation() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		if err := ctl.svc.Reservations.DeleteReservation(ctx, c.Param("id")); err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "reservation deleted"})
	}
}

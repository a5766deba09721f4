package controllers

import (
	"net/http"

	"go-restaurant-booking/middleware"
	"go-restaurant-booking/services"

	"github.com/gin-gonic/gin"
)

type checkTableRequest struct {
	TableID     string `json:"tableId"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
}

// CreateBooking books a table. Signed-in callers own the booking; anonymous
// callers book as guests.
func (ctl *Controller) CreateBooking() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var in services.CreateBookingInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}
		in.UserID = c.GetString(middleware.ContextUID)

		booking, err := ctl.svc.Bookings.Create(ctx, in)
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"success":   true,
			"message":   "booking created",
			"bookingId": booking.ID.Hex(),
			"data":      booking,
		})
	}
}

func (ctl *Controller) GetBooking() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		details, err := ctl.svc.Bookings.GetDetails(ctx, c.Param("id"))
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "booking fetched", "data": details})
	}
}

func (ctl *Controller) UpdateBooking() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var in services.UpdateBookingInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}
		details, err := ctl.svc.Bookings.Update(ctx, c.Param("id"), in)
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "booking updated", "data": details})
	}
}

func (ctl *Controller) CancelBooking() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		if err := ctl.svc.Bookings.Cancel(ctx, c.Param("id")); err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "booking canceled"})
	}
}

func (ctl *Controller) ConfirmBooking() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		confirmation, err := ctl.svc.Bookings.Confirm(ctx, c.Param("id"))
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "booking confirmed, confirmation email sent",
			"data":    confirmation,
		})
	}
}

func (ctl *Controller) UpdateNote() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var body struct {
			Notes string `json:"notes"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err)
			return
		}
		booking, err := ctl.svc.Bookings.UpdateNote(ctx, c.Param("id"), body.Notes)
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "notes updated", "data": booking})
	}
}

// GetAvailableTables lists tables free for ?bookingDate=&startTime=.
func (ctl *Controller) GetAvailableTables() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		date := c.Query("bookingDate")
		if date == "" {
			date = c.Query("date")
		}
		start := c.Query("startTime")
		if start == "" {
			start = c.Query("time")
		}
		tables, err := ctl.svc.Availability.ListAvailableTables(ctx, date, start)
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "available tables fetched", "data": tables})
	}
}

func (ctl *Controller) CheckTable() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var body checkTableRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err)
			return
		}
		available, err := ctl.svc.Availability.CheckTable(ctx, body.TableID, body.BookingDate, body.StartTime)
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		if !available {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": services.ErrAlreadyBooked, "isAvailable": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "table is available", "isAvailable": true})
	}
}

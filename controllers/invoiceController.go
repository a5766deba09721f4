package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetInvoice previews the confirmation of a booking, as JSON or, with
// ?format=html, as the mail body.
func (ctl *Controller) GetInvoice() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		invoice, err := ctl.svc.Bookings.Invoice(ctx, c.Param("booking_id"))
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		if c.Query("format") != "html" || ctl.invoices == nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "invoice fetched", "data": invoice})
			return
		}
		body, err := ctl.invoices.Render(*invoice)
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
	}
}

// Package controllers exposes the booking services over HTTP.
package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go-restaurant-booking/middleware"
	"go-restaurant-booking/models"
	"go-restaurant-booking/services"

	"github.com/gin-gonic/gin"
)

const requestTimeout = 30 * time.Second

// InvoiceRenderer turns a confirmation into the HTML body customers receive.
type InvoiceRenderer interface {
	Render(c models.Confirmation) (string, error)
}

// WebSocketServer accepts realtime subscribers.
type WebSocketServer interface {
	Serve(w http.ResponseWriter, r *http.Request)
}

type Controller struct {
	svc      *services.Services
	invoices InvoiceRenderer
	ws       WebSocketServer
	logger   *slog.Logger
}

func New(svc *services.Services, invoices InvoiceRenderer, ws WebSocketServer, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{svc: svc, invoices: invoices, ws: ws, logger: logger}
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

func statusFor(kind services.Kind) int {
	switch kind {
	case services.KindValidation, services.KindConflict, services.KindState:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps a service error onto the JSON error envelope.
func (ctl *Controller) respondError(c *gin.Context, err error) {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		ctl.logger.Error("unhandled error", "path", c.FullPath(), "request_id", c.GetString(middleware.ContextRequestID), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
		return
	}
	c.JSON(statusFor(svcErr.Kind), gin.H{"success": false, "message": svcErr.Message})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
}

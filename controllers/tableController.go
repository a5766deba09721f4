package controllers

import (
	"net/http"

	"go-restaurant-booking/services"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) GetTables() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		tables, err := ctl.svc.Tables.List(ctx, c.Query("status"))
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "tables fetched", "data": tables})
	}
}

func (ctl *Controller) GetTable() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		table, err := ctl.svc.Tables.Get(ctx, c.Param("tableNumber"))
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "table fetched", "data": table})
	}
}

func (ctl *Controller) CreateTable() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var in services.CreateTableInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}
		table, err := ctl.svc.Tables.Create(ctx, in)
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "table created", "data": table})
	}
}

func (ctl *Controller) UpdateTable() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var in services.UpdateTableInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}
		table, err := ctl.svc.Tables.Update(ctx, c.Param("tableNumber"), in)
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "table updated", "data": table})
	}
}

func (ctl *Controller) DeleteTable() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		if err := ctl.svc.Tables.Delete(ctx, c.Param("tableNumber")); err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "table deleted"})
	}
}

// GetAvailableNumbers lists the section numbers not yet registered.
func (ctl *Controller) GetAvailableNumbers() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		numbers, err := ctl.svc.Tables.AvailableNumbers(ctx)
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "available table numbers fetched", "data": numbers})
	}
}

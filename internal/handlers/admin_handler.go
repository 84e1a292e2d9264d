package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventrentals/internal/models"
	"github.com/joshua-takyi/eventrentals/internal/services"
)

func ExportBackup(b *services.BackupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := b.Export(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, doc)
	}
}

func ImportBackup(b *services.BackupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var doc models.Document
		if err := c.ShouldBindJSON(&doc); err != nil {
			badRequest(c, msgInvalidBody)
			return
		}

		if err := b.Import(c.Request.Context(), &doc); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Backup restored successfully"))
	}
}

func ResetBookings(b *services.BackupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := b.Reset(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "All bookings cleared"))
	}
}

// ListStoreEvents returns recent fallback activations, newest first.
func ListStoreEvents(b *services.BackupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				badRequest(c, "invalid limit parameter")
				return
			}
			limit = n
		}

		events, err := b.StoreEvents(c.Request.Context(), limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, events)
	}
}

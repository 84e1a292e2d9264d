package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventrentals/internal/models"
	"github.com/joshua-takyi/eventrentals/internal/services"
)

func GetSettings(s *services.SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := s.GetSettings(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

func SaveSettings(s *services.SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch models.Settings
		if err := c.ShouldBindJSON(&patch); err != nil {
			badRequest(c, msgInvalidBody)
			return
		}

		settings, err := s.MergeSettings(c.Request.Context(), patch)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

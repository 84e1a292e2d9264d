package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventrentals/internal/services"
)

func Health(f *services.Failover) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"service": "eventrentals-api",
			"store":   f.Mode(),
			"breaker": f.BreakerState(),
		})
	}
}

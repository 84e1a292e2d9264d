package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventrentals/internal/helpers"
	"github.com/joshua-takyi/eventrentals/internal/models"
	"github.com/joshua-takyi/eventrentals/internal/services"
)

func ListMessages(m *services.MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		messages, err := m.ListMessages(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, messages)
	}
}

func CreateMessage(m *services.MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var msg models.Message
		if err := c.ShouldBindJSON(&msg); err != nil {
			badRequest(c, msgInvalidBody)
			return
		}

		created, err := m.CreateMessage(c.Request.Context(), &msg)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// MarkMessageRead handles PATCH /messages with body {id, isRead}.
func MarkMessageRead(m *services.MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ID     string `json:"id"`
			IsRead *bool  `json:"isRead"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, msgInvalidBody)
			return
		}
		if req.IsRead == nil {
			badRequest(c, "Missing required fields: isRead")
			return
		}

		msg, err := m.MarkRead(c.Request.Context(), helpers.StringTrim(req.ID), *req.IsRead)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, msg)
	}
}

func DeleteMessage(m *services.MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.DeleteMessage(c.Request.Context(), pathID(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Message deleted successfully"))
	}
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventrentals/internal/apperrors"
	"github.com/joshua-takyi/eventrentals/internal/helpers"
	"github.com/joshua-takyi/eventrentals/internal/models"
)

const msgInvalidBody = "Invalid request body"

// respondError writes business errors with their own status and message.
// Anything else is attached to the context for middleware.ErrorHandler,
// which logs it and answers with a generic 500.
func respondError(c *gin.Context, err error) {
	if apperrors.IsBusiness(err) {
		appErr := apperrors.AsAppError(err)
		c.JSON(appErr.StatusCode(), models.ErrorResponse(appErr.Message))
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse(message))
}

// pathID reads the :id parameter, trimming stray quotes clients sometimes
// send around it.
func pathID(c *gin.Context) string {
	return helpers.StringTrim(c.Param("id"))
}

func queryFlag(c *gin.Context, key string) bool {
	v := strings.ToLower(strings.TrimSpace(c.Query(key)))
	return v == "true" || v == "1" || v == "yes"
}

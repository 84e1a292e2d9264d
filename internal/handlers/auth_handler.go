package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventrentals/internal/models"
	"github.com/joshua-takyi/eventrentals/internal/services"
)

const AccessTokenCookie = "access_token"

// CookieConfig controls the access token cookie set on sign-in.
type CookieConfig struct {
	Secure bool
	TTL    time.Duration
}

// Login checks credentials and returns {user, token}. The token is also set
// as an httpOnly cookie for the admin pages.
func Login(u *services.UserService, cookie CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, msgInvalidBody)
			return
		}

		result, err := u.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		c.SetCookie(
			AccessTokenCookie,
			result.Token,
			int(cookie.TTL.Seconds()),
			"/",
			"", // let Gin pick current domain
			cookie.Secure,
			true,
		)
		c.JSON(http.StatusOK, result)
	}
}

func ChangePassword(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email           string `json:"email"`
			CurrentPassword string `json:"currentPassword"`
			NewPassword     string `json:"newPassword"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, msgInvalidBody)
			return
		}

		if err := u.ChangePassword(c.Request.Context(), req.Email, req.CurrentPassword, req.NewPassword); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Password updated successfully"))
	}
}

func Logout(cookie CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(AccessTokenCookie, "", -1, "/", "", cookie.Secure, true)
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Logged out successfully"))
	}
}

package helpers

import "github.com/golang-jwt/jwt/v5"

// AdminClaims are the claims of a back-office access token.
type AdminClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (ac *AdminClaims) IsAdmin() bool {
	return ac.Role == "admin"
}

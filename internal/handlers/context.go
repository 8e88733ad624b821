package handlers

import (
	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/models"
	"github.com/labstack/echo/v4"
)

// getUserClaims returns the JWT claims stored by the auth middleware,
// or nil when the request is unauthenticated.
func getUserClaims(c echo.Context) *models.JwtCustomClaims {
	claims, _ := c.Get("user").(*models.JwtCustomClaims)
	return claims
}

func getUserIDFromContext(c echo.Context) uint {
	if claims := getUserClaims(c); claims != nil {
		return claims.UserID
	}
	return 0
}

package middleware

import (
	"net/http"

	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/models"
	"github.com/labstack/echo/v4"
)

// RequireRoles rejects requests whose authenticated user holds none of
// the allowed roles. Must run after JWTAuthMiddleware.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*models.JwtCustomClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "You do not have permission")
		}
	}
}

// Package middleware holds HTTP middleware for the admin API.
package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AdminAuth guards admin routes with a static bearer token. The health
// endpoint stays open so load balancers can probe without credentials.
func AdminAuth(token string, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == "/health" {
				return next(c)
			}

			got := c.Request().Header.Get(echo.HeaderAuthorization)
			want := "Bearer " + token
			if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
				logger.Warn("admin request rejected",
					zap.String("path", c.Path()),
					zap.String("remote", c.RealIP()),
				)
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			return next(c)
		}
	}
}

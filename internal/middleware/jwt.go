package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trailwatch/trailwatch/internal/utils"
)

// Context keys under which the authenticated identity is stored.
const (
	ctxUserID = "user_id"
	ctxEmail  = "email"
	ctxName   = "name"
)

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the token's identity claims into the request
// context. The provided secret must match the one used when issuing
// tokens. Protected handlers read the identity via UserID(c).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": "No token provided. Authorization header must be: Bearer <token>",
				})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": "Invalid or expired token. Please log in again.",
				})
			}

			c.Set(ctxUserID, claims.ID)
			c.Set(ctxEmail, claims.Email)
			c.Set(ctxName, claims.Name)
			return next(c)
		}
	}
}

// OptionalAuth attaches the identity when a valid bearer token is
// present but lets the request through either way. Used on public
// trail endpoints so results can be annotated with favorite state for
// logged-in users.
func OptionalAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				raw := strings.TrimPrefix(auth, "Bearer ")
				if claims, err := utils.ParseAccessToken(secret, raw); err == nil {
					c.Set(ctxUserID, claims.ID)
					c.Set(ctxEmail, claims.Email)
					c.Set(ctxName, claims.Name)
				}
				// invalid token but not required; continue anonymously
			}
			return next(c)
		}
	}
}

// UserID returns the authenticated user's id from the request context,
// or false when the request is anonymous.
func UserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(ctxUserID).(uint64)
	return id, ok && id != 0
}

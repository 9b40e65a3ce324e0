package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

var startedAt = time.Now()

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(startedAt).Seconds(),
	})
}

// APIInfo lists the available endpoints for quick manual discovery.
func APIInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"name":    "TrailWatch API",
		"version": "1.0.0",
		"endpoints": echo.Map{
			"auth": echo.Map{
				"POST /api/auth/register":        "Register new user",
				"POST /api/auth/login":           "Login user",
				"GET /api/auth/me":               "Get current user (protected)",
				"POST /api/auth/forgot-password": "Request password reset",
				"POST /api/auth/reset-password":  "Reset password with token",
			},
			"users": echo.Map{
				"GET /api/users/profile":               "Get current user profile (protected)",
				"PUT /api/users/profile":               "Update user profile (protected)",
				"GET /api/users/favorites":             "Get user's favorite trails (protected)",
				"POST /api/users/favorites/:trailId":   "Add trail to favorites (protected)",
				"DELETE /api/users/favorites/:trailId": "Remove trail from favorites (protected)",
				"GET /api/users/favorites/:trailId":    "Check if a trail is favorited (protected)",
			},
			"trails": echo.Map{
				"GET /api/trails":        "List trails (filters: difficulty, maxLength, location, search; pagination: page, limit)",
				"GET /api/trails/:id":    "Get trail by ID",
				"POST /api/trails":       "Create new trail",
				"PUT /api/trails/:id":    "Update trail",
				"DELETE /api/trails/:id": "Delete trail",
			},
			"traffic": echo.Map{
				"GET /api/traffic":          "Get all traffic reports",
				"GET /api/traffic/stats":    "Get traffic statistics",
				"GET /api/traffic/refresh":  "Refresh all traffic data",
				"GET /api/traffic/:trailId": "Get traffic for trail",
				"PUT /api/traffic/:trailId": "Update traffic for trail",
			},
		},
	})
}

// Package handler implements the HTTP surface. Every response uses the
// standard envelope {success, message?, data?, details?}; list
// responses add count/total/page/totalPages.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trailwatch/trailwatch/internal/middleware"
	"github.com/trailwatch/trailwatch/internal/repository"
)

// currentUser returns the authenticated user's id. Handlers behind
// JWTAuth can rely on ok being true.
func currentUser(c echo.Context) (uint64, bool) {
	return middleware.UserID(c)
}

// fieldError describes one failing field in a validation response.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// fail writes an error envelope.
func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message})
}

// failValidation writes a 400 with per-field details.
func failValidation(c echo.Context, details []fieldError) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"success": false,
		"message": "Validation failed",
		"details": details,
	})
}

// failRepo maps repository sentinels onto the HTTP error taxonomy:
// not-found 404, duplicate 409, bad reference 400, everything else 500.
// notFoundMsg customizes the 404 message; internal errors never leak
// details to the client.
func failRepo(c echo.Context, err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fail(c, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, repository.ErrDuplicate):
		return fail(c, http.StatusConflict, "Resource already exists")
	case errors.Is(err, repository.ErrBadReference):
		return fail(c, http.StatusBadRequest, "Referenced resource does not exist")
	}
	c.Logger().Error(err)
	return fail(c, http.StatusInternalServerError, "Internal server error")
}

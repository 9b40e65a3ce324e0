package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trailwatch/trailwatch/internal/repository"
)

// UserHandler bundles dependencies for profile and favorites endpoints.
// All of them sit behind JWTAuth.
type UserHandler struct {
	Users     *repository.UserRepo
	Favorites *repository.FavoriteRepo
}

func NewUserHandler(u *repository.UserRepo, f *repository.FavoriteRepo) *UserHandler {
	return &UserHandler{Users: u, Favorites: f}
}

// GetProfile handles GET /api/users/profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, _ := currentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return failRepo(c, err, "User not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": user.Public()})
}

type profileReq struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UpdateProfile handles PUT /api/users/profile: partial update of name
// and/or email. A new email must not belong to another user.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, _ := currentUser(c)

	var req profileReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid input format")
	}
	var details []fieldError
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if len(trimmed) < 2 || len(trimmed) > 255 {
			details = append(details, fieldError{"name", "Name must be between 2 and 255 characters"})
		}
		req.Name = &trimmed
	}
	if req.Email != nil && !strings.Contains(*req.Email, "@") {
		details = append(details, fieldError{"email", "Please provide a valid email"})
	}
	if details != nil {
		return failValidation(c, details)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if req.Email != nil {
		inUse, err := h.Users.EmailExistsForOther(ctx, *req.Email, userID)
		if err != nil {
			return failRepo(c, err, "")
		}
		if inUse {
			return fail(c, http.StatusBadRequest, "Email already in use")
		}
	}

	user, err := h.Users.UpdateProfile(ctx, userID, req.Name, req.Email)
	if err != nil {
		return failRepo(c, err, "User not found")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Profile updated successfully",
		"data":    user.Public(),
	})
}

// GetFavorites handles GET /api/users/favorites.
func (h *UserHandler) GetFavorites(c echo.Context) error {
	userID, _ := currentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	favorites, err := h.Favorites.ListForUser(ctx, userID)
	if err != nil {
		return failRepo(c, err, "")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(favorites),
		"data":    favorites,
	})
}

// AddFavorite handles POST /api/users/favorites/:trailId. Re-adding an
// existing favorite succeeds without duplicating the relation.
func (h *UserHandler) AddFavorite(c echo.Context) error {
	userID, _ := currentUser(c)
	trailID, details := trailIDParam(c, "trailId")
	if details != nil {
		return failValidation(c, details)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Favorites.Add(ctx, userID, trailID); err != nil {
		return failRepo(c, err, "")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Trail added to favorites",
	})
}

// RemoveFavorite handles DELETE /api/users/favorites/:trailId. Removing
// a relation that does not exist is a successful no-op.
func (h *UserHandler) RemoveFavorite(c echo.Context) error {
	userID, _ := currentUser(c)
	trailID, details := trailIDParam(c, "trailId")
	if details != nil {
		return failValidation(c, details)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Favorites.Remove(ctx, userID, trailID); err != nil {
		return failRepo(c, err, "")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Trail removed from favorites",
	})
}

// CheckFavorite handles GET /api/users/favorites/:trailId.
func (h *UserHandler) CheckFavorite(c echo.Context) error {
	userID, _ := currentUser(c)
	trailID, details := trailIDParam(c, "trailId")
	if details != nil {
		return failValidation(c, details)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	favorited, err := h.Favorites.IsFavorited(ctx, userID, trailID)
	if err != nil {
		return failRepo(c, err, "")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"is_favorited": favorited},
	})
}

package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trailwatch/trailwatch/internal/middleware"
	"github.com/trailwatch/trailwatch/internal/model"
	"github.com/trailwatch/trailwatch/internal/repository"
)

// TrailHandler bundles dependencies for trail endpoints.
type TrailHandler struct {
	Trails    *repository.TrailRepo
	Favorites *repository.FavoriteRepo
}

func NewTrailHandler(t *repository.TrailRepo, f *repository.FavoriteRepo) *TrailHandler {
	return &TrailHandler{Trails: t, Favorites: f}
}

// trailReq is the body of both create and partial-update requests.
// Unknown fields are ignored; nil means "not provided".
type trailReq struct {
	Name               *string  `json:"name"`
	Description        *string  `json:"description"`
	Difficulty         *string  `json:"difficulty"`
	LengthKM           *float64 `json:"length_km"`
	ElevationGainM     *int     `json:"elevation_gain_m"`
	EstimatedTimeHours *float64 `json:"estimated_time_hours"`
	Location           *string  `json:"location"`
	ImageURL           *string  `json:"image_url"`
}

// validateTrailFields checks every provided field against its allowed
// range. requireName distinguishes create from partial update.
func validateTrailFields(req trailReq, requireName bool) []fieldError {
	var details []fieldError
	if requireName && (req.Name == nil || *req.Name == "") {
		details = append(details, fieldError{"name", "Trail name is required"})
	}
	if req.Name != nil && len(*req.Name) > 255 {
		details = append(details, fieldError{"name", "Trail name must be less than 255 characters"})
	}
	if req.Description != nil && len(*req.Description) > 2000 {
		details = append(details, fieldError{"description", "Description must be less than 2000 characters"})
	}
	if req.Difficulty != nil && !model.ValidDifficulty(*req.Difficulty) {
		details = append(details, fieldError{"difficulty", "Difficulty must be: easy, moderate, hard, or expert"})
	}
	if req.LengthKM != nil && (*req.LengthKM < 0.1 || *req.LengthKM > 500) {
		details = append(details, fieldError{"length_km", "Length must be between 0.1 and 500 km"})
	}
	if req.ElevationGainM != nil && (*req.ElevationGainM < 0 || *req.ElevationGainM > 10000) {
		details = append(details, fieldError{"elevation_gain_m", "Elevation gain must be between 0 and 10000 meters"})
	}
	if req.EstimatedTimeHours != nil && (*req.EstimatedTimeHours < 0.1 || *req.EstimatedTimeHours > 100) {
		details = append(details, fieldError{"estimated_time_hours", "Estimated time must be between 0.1 and 100 hours"})
	}
	if req.Location != nil && len(*req.Location) > 255 {
		details = append(details, fieldError{"location", "Location must be less than 255 characters"})
	}
	return details
}

// trailIDParam parses a positive-integer path parameter.
func trailIDParam(c echo.Context, name string) (uint64, []fieldError) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, []fieldError{{name, "Trail ID must be a positive integer"}}
	}
	return id, nil
}

// List handles GET /api/trails: optional filters, pagination and, for
// authenticated users, per-row favorite annotation.
func (h *TrailHandler) List(c echo.Context) error {
	q := repository.TrailSearchQuery{
		Difficulty: c.QueryParam("difficulty"),
		Location:   c.QueryParam("location"),
		Search:     c.QueryParam("search"),
	}

	var details []fieldError
	if q.Difficulty != "" && !model.ValidDifficulty(q.Difficulty) {
		details = append(details, fieldError{"difficulty", "Difficulty must be: easy, moderate, hard, or expert"})
	}
	if raw := c.QueryParam("maxLength"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			details = append(details, fieldError{"maxLength", "maxLength must be a positive number"})
		} else {
			q.MaxLength = v
		}
	}
	if details != nil {
		return failValidation(c, details)
	}

	// Out-of-range pagination clamps silently.
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	q.Page = repository.NormalizePage(page, limit)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	trails, total, err := h.Trails.Search(ctx, q)
	if err != nil {
		return failRepo(c, err, "")
	}

	if userID, ok := middleware.UserID(c); ok {
		if err := h.annotateFavorites(ctx, userID, trails); err != nil {
			return failRepo(c, err, "")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"count":      len(trails),
		"total":      total,
		"page":       q.Page.Number,
		"totalPages": q.Page.TotalPages(total),
		"data":       trails,
	})
}

// annotateFavorites fills IsFavorite on each row from one batch lookup.
func (h *TrailHandler) annotateFavorites(ctx context.Context, userID uint64, trails []model.TrailWithTraffic) error {
	ids := make([]uint64, len(trails))
	for i := range trails {
		ids[i] = trails[i].ID
	}
	statuses, err := h.Favorites.Statuses(ctx, userID, ids)
	if err != nil {
		return err
	}
	for i := range trails {
		fav := statuses[trails[i].ID]
		trails[i].IsFavorite = &fav
	}
	return nil
}

// GetByID handles GET /api/trails/:id.
func (h *TrailHandler) GetByID(c echo.Context) error {
	id, details := trailIDParam(c, "id")
	if details != nil {
		return failValidation(c, details)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	trail, err := h.Trails.GetWithTraffic(ctx, id)
	if err != nil {
		return failRepo(c, err, fmt.Sprintf("Trail with ID %d not found", id))
	}

	if userID, ok := middleware.UserID(c); ok {
		fav, err := h.Favorites.IsFavorited(ctx, userID, id)
		if err != nil {
			return failRepo(c, err, "")
		}
		trail.IsFavorite = &fav
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": trail})
}

// Create handles POST /api/trails.
func (h *TrailHandler) Create(c echo.Context) error {
	var req trailReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid input format")
	}
	if details := validateTrailFields(req, true); details != nil {
		return failValidation(c, details)
	}

	in := repository.NewTrail{
		Name:               *req.Name,
		Description:        req.Description,
		Difficulty:         model.DifficultyModerate,
		LengthKM:           req.LengthKM,
		ElevationGainM:     req.ElevationGainM,
		EstimatedTimeHours: req.EstimatedTimeHours,
		Location:           req.Location,
		ImageURL:           req.ImageURL,
	}
	if req.Difficulty != nil {
		in.Difficulty = *req.Difficulty
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	trail, err := h.Trails.Create(ctx, in)
	if err != nil {
		return failRepo(c, err, "")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Trail created successfully",
		"data":    trail,
	})
}

// Update handles PUT /api/trails/:id: a partial update where only
// provided fields change.
func (h *TrailHandler) Update(c echo.Context) error {
	id, details := trailIDParam(c, "id")
	if details != nil {
		return failValidation(c, details)
	}

	var req trailReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid input format")
	}
	if details := validateTrailFields(req, false); details != nil {
		return failValidation(c, details)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	exists, err := h.Trails.Exists(ctx, id)
	if err != nil {
		return failRepo(c, err, "")
	}
	if !exists {
		return fail(c, http.StatusNotFound, fmt.Sprintf("Trail with ID %d not found", id))
	}

	trail, err := h.Trails.Update(ctx, id, repository.TrailPatch{
		Name:               req.Name,
		Description:        req.Description,
		Difficulty:         req.Difficulty,
		LengthKM:           req.LengthKM,
		ElevationGainM:     req.ElevationGainM,
		EstimatedTimeHours: req.EstimatedTimeHours,
		Location:           req.Location,
		ImageURL:           req.ImageURL,
	})
	if err != nil {
		return failRepo(c, err, fmt.Sprintf("Trail with ID %d not found", id))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Trail updated successfully",
		"data":    trail,
	})
}

// Delete handles DELETE /api/trails/:id and returns the deleted row.
func (h *TrailHandler) Delete(c echo.Context) error {
	id, details := trailIDParam(c, "id")
	if details != nil {
		return failValidation(c, details)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	trail, err := h.Trails.Delete(ctx, id)
	if err != nil {
		return failRepo(c, err, fmt.Sprintf("Trail with ID %d not found", id))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Trail deleted successfully",
		"data":    trail,
	})
}

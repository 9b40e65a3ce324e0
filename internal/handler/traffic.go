package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trailwatch/trailwatch/internal/model"
	"github.com/trailwatch/trailwatch/internal/queue"
	"github.com/trailwatch/trailwatch/internal/repository"
)

// TrafficPublisher broadcasts traffic changes to the message broker.
// Publishing is best-effort: a broker outage never fails the request.
type TrafficPublisher interface {
	PublishTrafficUpdated(ctx context.Context, ev queue.TrafficUpdatedEvent) error
}

// TrafficHandler bundles dependencies for traffic endpoints.
type TrafficHandler struct {
	Traffic   *repository.TrafficRepo
	Trails    *repository.TrailRepo
	Publisher TrafficPublisher
}

func NewTrafficHandler(tr *repository.TrafficRepo, t *repository.TrailRepo, p TrafficPublisher) *TrafficHandler {
	return &TrafficHandler{Traffic: tr, Trails: t, Publisher: p}
}

// publish fires a traffic event without blocking the request.
func (h *TrafficHandler) publish(ev queue.TrafficUpdatedEvent) {
	if h.Publisher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.Publisher.PublishTrafficUpdated(ctx, ev)
	}()
}

// GetAll handles GET /api/traffic: every report, busiest first.
func (h *TrafficHandler) GetAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reports, err := h.Traffic.GetAll(ctx)
	if err != nil {
		return failRepo(c, err, "")
	}
	for i := range reports {
		reports[i].CongestionLabel = model.CongestionLabel(reports[i].CongestionLevel)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(reports),
		"data":    reports,
	})
}

// GetStats handles GET /api/traffic/stats.
func (h *TrafficHandler) GetStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stats, err := h.Traffic.Stats(ctx)
	if err != nil {
		return failRepo(c, err, "")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": stats})
}

// RefreshAll handles GET /api/traffic/refresh: re-randomizes every
// report as a stand-in for live telemetry ingestion. The loop is not
// atomic; a mid-run failure leaves earlier rows updated.
func (h *TrafficHandler) RefreshAll(c echo.Context) error {
	// The refresh loop can outlast the per-request default on large
	// datasets, so it gets a more generous timeout.
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	updates, err := h.Traffic.RefreshAll(ctx)
	if err != nil {
		return failRepo(c, err, "")
	}

	for _, rep := range updates {
		h.publish(queue.TrafficUpdatedEvent{
			TrailID:         rep.TrailID,
			CongestionLevel: rep.CongestionLevel,
			ReporterCount:   rep.ReporterCount,
			Source:          queue.SourceRefresh,
			UpdatedAt:       rep.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Traffic data refreshed",
		"count":   len(updates),
		"data":    updates,
	})
}

// GetByTrail handles GET /api/traffic/:trailId.
func (h *TrafficHandler) GetByTrail(c echo.Context) error {
	trailID, details := trailIDParam(c, "trailId")
	if details != nil {
		return failValidation(c, details)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	exists, err := h.Trails.Exists(ctx, trailID)
	if err != nil {
		return failRepo(c, err, "")
	}
	if !exists {
		return fail(c, http.StatusNotFound, fmt.Sprintf("Trail with ID %d not found", trailID))
	}

	traffic, err := h.Traffic.GetByTrailID(ctx, trailID)
	if err != nil {
		return failRepo(c, err, fmt.Sprintf("No traffic report found for trail %d", trailID))
	}
	traffic.CongestionLabel = model.CongestionLabel(traffic.CongestionLevel)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": traffic})
}

type trafficUpdateReq struct {
	CongestionLevel *int    `json:"congestion_level"`
	Notes           *string `json:"notes"`
}

// Update handles PUT /api/traffic/:trailId: a manual congestion report.
func (h *TrafficHandler) Update(c echo.Context) error {
	trailID, details := trailIDParam(c, "trailId")
	if details != nil {
		return failValidation(c, details)
	}

	var req trafficUpdateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid input format")
	}
	if req.CongestionLevel == nil || *req.CongestionLevel < 1 || *req.CongestionLevel > 5 {
		details = append(details, fieldError{"congestion_level", "Congestion level must be between 1 and 5"})
	}
	if req.Notes != nil && len(*req.Notes) > 500 {
		details = append(details, fieldError{"notes", "Notes must be less than 500 characters"})
	}
	if details != nil {
		return failValidation(c, details)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	exists, err := h.Trails.Exists(ctx, trailID)
	if err != nil {
		return failRepo(c, err, "")
	}
	if !exists {
		return fail(c, http.StatusNotFound, fmt.Sprintf("Trail with ID %d not found", trailID))
	}

	traffic, err := h.Traffic.Update(ctx, trailID, *req.CongestionLevel, req.Notes)
	if err != nil {
		return failRepo(c, err, fmt.Sprintf("No traffic report found for trail %d", trailID))
	}
	traffic.CongestionLabel = model.CongestionLabel(traffic.CongestionLevel)

	h.publish(queue.TrafficUpdatedEvent{
		TrailID:         traffic.TrailID,
		TrailName:       traffic.TrailName,
		CongestionLevel: traffic.CongestionLevel,
		ReporterCount:   traffic.ReporterCount,
		Source:          queue.SourceReport,
		UpdatedAt:       traffic.UpdatedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Traffic updated successfully",
		"data":    traffic,
	})
}

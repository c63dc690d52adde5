package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/quickshow/quickshow-api/internal/model"
	"github.com/quickshow/quickshow-api/internal/repository"
)

// PlatformHandler serves the platform-owner console: global metrics and
// the theater approval workflow.
type PlatformHandler struct {
	Theaters    *repository.TheaterRepo
	MetricsRepo *repository.MetricsRepo
}

func NewPlatformHandler(t *repository.TheaterRepo, m *repository.MetricsRepo) *PlatformHandler {
	return &PlatformHandler{Theaters: t, MetricsRepo: m}
}

// Metrics returns the global platform counters.
func (h *PlatformHandler) Metrics(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.MetricsRepo.ForPlatform(ctx)
	if err != nil {
		logrus.Errorf("platform: metrics failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"metrics": m})
}

// ListTheaters returns theaters by approval status. The status query
// parameter defaults to PENDING, which is the owner's review queue.
func (h *PlatformHandler) ListTheaters(c echo.Context) error {
	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	if status == "" {
		status = model.TheaterPending
	}
	switch status {
	case model.TheaterPending, model.TheaterApproved, model.TheaterRejected:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	theaters, err := h.Theaters.ListByStatus(ctx, status)
	if err != nil {
		logrus.Errorf("platform: list theaters failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]echo.Map, 0, len(theaters))
	for _, t := range theaters {
		item := echo.Map{
			"id":         t.ID,
			"name":       t.Name,
			"location":   t.Location,
			"city":       t.City,
			"status":     t.Status,
			"created_at": t.CreatedAt,
		}
		if t.AdminID != nil {
			item["admin_id"] = *t.AdminID
		}
		out = append(out, item)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

type theaterStatusReq struct {
	Status string `json:"status"`
}

// UpdateTheaterStatus handles PATCH /v1/platform/theaters/:id, moving a
// theater to APPROVED or REJECTED. Approval is what makes the theater and
// its showtimes visible to customers.
func (h *PlatformHandler) UpdateTheaterStatus(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid theater id"})
	}
	var req theaterStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status != model.TheaterApproved && status != model.TheaterRejected {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be APPROVED or REJECTED"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Theaters.UpdateStatus(ctx, id, status); err != nil {
		if err == repository.ErrTheaterNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theater not found"})
		}
		logrus.Errorf("platform: update theater %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": status})
}

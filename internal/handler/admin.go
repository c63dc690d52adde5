package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/quickshow/quickshow-api/internal/repository"
)

// AdminHandler serves the theater-admin dashboard. Every endpoint is
// scoped to the single theater assigned to the authenticated admin; an
// admin without an assigned theater gets 404 rather than empty data.
type AdminHandler struct {
	Theaters    *repository.TheaterRepo
	Screens     *repository.ScreenRepo
	MetricsRepo *repository.MetricsRepo
}

func NewAdminHandler(t *repository.TheaterRepo, sc *repository.ScreenRepo, m *repository.MetricsRepo) *AdminHandler {
	return &AdminHandler{Theaters: t, Screens: sc, MetricsRepo: m}
}

// ownTheater resolves the theater managed by the authenticated admin. On
// failure it writes the error response and returns ok=false.
func (h *AdminHandler) ownTheater(c echo.Context, ctx context.Context) (uint64, bool) {
	uid, err := getUserID(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return 0, false
	}
	t, err := h.Theaters.GetByAdmin(ctx, uid)
	if err != nil {
		if err == repository.ErrTheaterNotFound {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "no theater assigned"})
			return 0, false
		}
		logrus.Errorf("admin: resolve theater failed: %v", err)
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		return 0, false
	}
	return t.ID, true
}

// Metrics returns the admin's theater record with its live counters.
func (h *AdminHandler) Metrics(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	theaterID, ok := h.ownTheater(c, ctx)
	if !ok {
		return nil
	}
	t, err := h.Theaters.GetByID(ctx, theaterID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	m, err := h.MetricsRepo.ForTheater(ctx, theaterID)
	if err != nil {
		logrus.Errorf("admin: theater metrics failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"theater": echo.Map{
			"id":       t.ID,
			"name":     t.Name,
			"location": t.Location,
			"city":     t.City,
			"status":   t.Status,
		},
		"metrics": m,
	})
}

// ListScreens returns the screens of the admin's theater.
func (h *AdminHandler) ListScreens(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	theaterID, ok := h.ownTheater(c, ctx)
	if !ok {
		return nil
	}
	screens, err := h.Screens.ListByTheater(ctx, theaterID)
	if err != nil {
		logrus.Errorf("admin: list screens failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]echo.Map, 0, len(screens))
	for _, s := range screens {
		out = append(out, echo.Map{
			"id":     s.ID,
			"name":   s.Name,
			"format": s.Format,
			"layout": s.Layout,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

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

// CheckinHandler is the venue operator console: it resolves a scanned
// check-in code and consumes it exactly once.
type CheckinHandler struct {
	Bookings *repository.BookingRepo
}

func NewCheckinHandler(b *repository.BookingRepo) *CheckinHandler {
	return &CheckinHandler{Bookings: b}
}

// Check-in rejection reasons returned to the operator.
const (
	checkinReasonUsed         = "code already used"
	checkinReasonNotConfirmed = "booking not confirmed"
)

// evaluateCheckin decides whether a booking's code may be consumed.
// The order matters: a booking that was checked in and later cancelled
// still reports "already used", which is what the operator needs to know.
func evaluateCheckin(b model.Booking) (ok bool, reason string) {
	if b.CheckedIn {
		return false, checkinReasonUsed
	}
	if b.Status != model.BookingConfirmed {
		return false, checkinReasonNotConfirmed
	}
	return true, ""
}

type checkinReq struct {
	Code string `json:"code"`
}

// CheckIn handles POST /v1/checkin. The code row is locked for the
// duration of the transaction, so two operators scanning the same ticket
// serialize: the first consumes the code, the second gets "already used".
func (h *CheckinHandler) CheckIn(c echo.Context) error {
	var req checkinReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := h.Bookings.GetByCodeTx(ctx, tx, code)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found", "valid": false})
		}
		logrus.Errorf("checkin: lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if ok, reason := evaluateCheckin(b); !ok {
		return c.JSON(http.StatusConflict, echo.Map{"error": reason, "valid": false})
	}

	now := time.Now().UTC()
	if err := h.Bookings.MarkCheckedInTx(ctx, tx, b.ID, now); err != nil {
		logrus.Errorf("checkin: mark booking %d failed: %v", b.ID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check in"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit check-in"})
	}
	committed = true

	d, err := h.Bookings.GetCheckinDetail(ctx, b.ID)
	if err != nil {
		// The check-in itself committed; degrade to a minimal response.
		logrus.Errorf("checkin: load detail for %d failed: %v", b.ID, err)
		return c.JSON(http.StatusOK, echo.Map{
			"valid":         true,
			"booking_id":    b.ID,
			"checked_in_at": now,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"valid":   true,
		"booking": d,
	})
}

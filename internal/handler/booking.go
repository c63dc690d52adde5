package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/quickshow/quickshow-api/internal/config"
	"github.com/quickshow/quickshow-api/internal/model"
	"github.com/quickshow/quickshow-api/internal/queue"
	"github.com/quickshow/quickshow-api/internal/repository"
	"github.com/quickshow/quickshow-api/internal/seatmap"
	queue_publisher "github.com/quickshow/quickshow-api/internal/service"
	"github.com/quickshow/quickshow-api/internal/ticket"
	"github.com/quickshow/quickshow-api/internal/utils"
)

// BookingHandler groups the repositories needed to create, list, cancel
// and render bookings on behalf of customers. All methods assume JWT
// authentication has already run; role validation is done by middleware.
// Seat claims run inside a transaction so two customers can never both
// confirm the same seat.
type BookingHandler struct {
	Cfg       config.Config
	Bookings  *repository.BookingRepo
	Showtimes *repository.ShowtimeRepo
	Screens   *repository.ScreenRepo
	Users     *repository.UserRepo
}

func NewBookingHandler(cfg config.Config, b *repository.BookingRepo, st *repository.ShowtimeRepo, sc *repository.ScreenRepo, u *repository.UserRepo) *BookingHandler {
	if b == nil || st == nil || sc == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Cfg: cfg, Bookings: b, Showtimes: st, Screens: sc, Users: u}
}

type createBookingReq struct {
	Seats []string `json:"seats"`
}

// Create handles POST /v1/showtimes/:id/bookings. It validates the seat
// selection against the screen layout, re-checks occupancy under row
// locks inside a transaction, prices the seats per class, and inserts the
// booking with a fresh check-in code. A seat lost to a concurrent booking
// returns 409 with the list of unavailable seats.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	showtimeID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	st, err := h.Showtimes.GetByID(ctx, showtimeID)
	if err != nil {
		if err == repository.ErrShowtimeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	// Showtimes in the past cannot be booked.
	if start, err := repository.StartsAt(st); err == nil && !start.After(time.Now().UTC()) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "showtime already started"})
	}

	screen, err := h.Screens.GetByID(ctx, st.ScreenID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	layout, err := seatmap.Parse(screen.Layout)
	if err != nil {
		logrus.Errorf("booking: bad layout on screen %d: %v", screen.ID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "invalid screen layout"})
	}
	seats, err := layout.ValidateSelection(req.Seats, h.Cfg.BookingMaxSeat)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	prices := seatmap.Prices{
		PremiumCents: st.PricePremiumCents,
		GoldCents:    st.PriceGoldCents,
		RegularCents: st.PriceRegularCents,
	}
	total, err := layout.Total(seats, prices)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

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

	// Re-check occupancy under lock; the advisory check on the seat map
	// page may be stale by the time the customer submits.
	occupied, err := h.Bookings.OccupiedSeatsTx(ctx, tx, st.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check seat availability"})
	}
	taken := make(map[string]bool, len(occupied))
	for _, s := range occupied {
		taken[s] = true
	}
	unavailable := make([]string, 0)
	for _, s := range seats {
		if taken[s] {
			unavailable = append(unavailable, s)
		}
	}
	if len(unavailable) > 0 {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":             "seats no longer available",
			"unavailable_seats": unavailable,
		})
	}

	booking := model.Booking{
		UserID:        userID,
		ShowtimeID:    st.ID,
		Seats:         seats,
		TotalCents:    total,
		Status:        model.BookingConfirmed,
		PaymentStatus: model.PaymentPending, // no payment capture in this service
		CheckinCode:   utils.NewCheckinCode(),
	}
	if err := h.Bookings.CreateTx(ctx, tx, &booking); err != nil {
		if errors.Is(err, repository.ErrSeatTaken) {
			// Unique key on (showtime_id, seat_label) caught a race the
			// locked re-check missed.
			return c.JSON(http.StatusConflict, echo.Map{
				"error":             "seats no longer available",
				"unavailable_seats": seats,
			})
		}
		logrus.Errorf("booking: insert failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit booking"})
	}
	committed = true

	go h.publishCreated(booking, st)

	return c.JSON(http.StatusCreated, echo.Map{
		"id":             booking.ID,
		"showtime_id":    booking.ShowtimeID,
		"seats":          booking.Seats,
		"total_cents":    booking.TotalCents,
		"status":         booking.Status,
		"payment_status": booking.PaymentStatus,
		"checkin_code":   booking.CheckinCode,
		"created_at":     booking.CreatedAt,
	})
}

// publishCreated emits the booking.created event after commit. Failures
// are logged inside the publisher; a broker outage never fails a booking.
func (h *BookingHandler) publishCreated(b model.Booking, st model.Showtime) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ev := queue.BookingCreatedEvent{
		BookingID:  b.ID,
		UserID:     b.UserID,
		ShowtimeID: b.ShowtimeID,
		ShowDate:   st.ShowDate,
		ShowTime:   st.ShowTime,
		Seats:      b.Seats,
		TotalCents: b.TotalCents,
		CreatedAt:  b.CreatedAt.UTC().Format(time.RFC3339),
	}
	// Enrich with display names; failures leave the fields empty rather
	// than blocking the event.
	if d, err := h.Bookings.GetDetailForUser(ctx, b.ID, b.UserID); err == nil {
		ev.MovieTitle = d.MovieTitle
		ev.TheaterName = d.TheaterName
		ev.ScreenName = d.ScreenName
	}
	_ = queue_publisher.PublishBookingCreated(ctx, ev)
}

// ListMine returns the authenticated user's bookings, newest first.
func (h *BookingHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	details, err := h.Bookings.ListByUser(ctx, userID)
	if err != nil {
		logrus.Errorf("booking: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// GetMine returns one of the user's bookings with show details. Foreign
// booking ids surface as 404.
func (h *BookingHandler) GetMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Bookings.GetDetailForUser(ctx, id, userID)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, d)
}

// Cancel handles DELETE /v1/bookings/:id. Only the owner may cancel,
// only CONFIRMED bookings qualify, and only before the showtime starts.
// Cancellation frees the seats immediately.
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
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

	b, err := h.Bookings.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if b.UserID != userID {
		// Hide existence of other users' bookings.
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	if b.Status != model.BookingConfirmed {
		return c.JSON(http.StatusConflict, echo.Map{"error": fmt.Sprintf("booking is %s", b.Status)})
	}
	if b.CheckedIn {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking already checked in"})
	}
	st, err := h.Showtimes.GetByID(ctx, b.ShowtimeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if start, err := repository.StartsAt(st); err == nil && !start.After(time.Now().UTC()) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "showtime already started"})
	}

	if err := h.Bookings.CancelTx(ctx, tx, b.ID); err != nil {
		logrus.Errorf("booking: cancel %d failed: %v", b.ID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel booking"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit cancellation"})
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{
		"id":     b.ID,
		"status": model.BookingCancelled,
		"seats":  b.Seats,
	})
}

// TicketQR returns the booking's check-in code as a PNG QR image.
func (h *BookingHandler) TicketQR(c echo.Context) error {
	d, errResp := h.ownedDetail(c)
	if d == nil {
		return errResp
	}
	png, err := ticket.CheckinQRPNG(d.CheckinCode, ticket.QRSize)
	if err != nil {
		logrus.Errorf("booking: render qr for %d failed: %v", d.ID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to render qr"})
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

// TicketPDF returns a printable PDF ticket with the embedded QR code.
func (h *BookingHandler) TicketPDF(c echo.Context) error {
	d, errResp := h.ownedDetail(c)
	if d == nil {
		return errResp
	}
	userName := ""
	if uid, err := getUserID(c); err == nil && h.Users != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		if u, err := h.Users.GetByID(ctx, uid); err == nil {
			userName = u.Name
		}
	}
	pdf, err := ticket.RenderPDF(ticket.PDFData{
		MovieTitle:  d.MovieTitle,
		TheaterName: d.TheaterName,
		Location:    d.TheaterLocation,
		ScreenName:  d.ScreenName,
		ShowDate:    d.ShowDate,
		ShowTime:    d.ShowTime,
		Seats:       d.Seats,
		TotalCents:  d.TotalCents,
		CheckinCode: d.CheckinCode,
		UserName:    userName,
	})
	if err != nil {
		logrus.Errorf("booking: render pdf for %d failed: %v", d.ID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to render ticket"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="ticket-%d.pdf"`, d.ID))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// ownedDetail loads the booking named by :id when it belongs to the
// authenticated user and is still CONFIRMED. On failure it writes the
// error response and returns nil.
func (h *BookingHandler) ownedDetail(c echo.Context) (*repository.BookingDetail, error) {
	userID, err := getUserID(c)
	if err != nil {
		return nil, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Bookings.GetDetailForUser(ctx, id, userID)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if d.Status != model.BookingConfirmed {
		return nil, c.JSON(http.StatusConflict, echo.Map{"error": fmt.Sprintf("booking is %s", d.Status)})
	}
	return d, nil
}

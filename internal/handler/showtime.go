package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/quickshow/quickshow-api/internal/repository"
	"github.com/quickshow/quickshow-api/internal/seatmap"
)

// ShowtimeHandler serves showtime listings and the seat map for seat
// selection.
type ShowtimeHandler struct {
	Showtimes *repository.ShowtimeRepo
	Screens   *repository.ScreenRepo
	Bookings  *repository.BookingRepo
}

func NewShowtimeHandler(st *repository.ShowtimeRepo, sc *repository.ScreenRepo, b *repository.BookingRepo) *ShowtimeHandler {
	return &ShowtimeHandler{Showtimes: st, Screens: sc, Bookings: b}
}

// TheaterShowtimes groups a theater's showtimes of one movie on one date.
type TheaterShowtimes struct {
	TheaterID   uint64                      `json:"theater_id"`
	TheaterName string                      `json:"theater_name"`
	Location    string                      `json:"location"`
	City        string                      `json:"city"`
	Showtimes   []repository.ShowtimeDetail `json:"showtimes"`
}

// groupShowtimes folds a flat, theater-ordered listing into per-theater
// groups, preserving the repository's ordering.
func groupShowtimes(details []repository.ShowtimeDetail) []TheaterShowtimes {
	groups := make([]TheaterShowtimes, 0)
	for _, d := range details {
		if n := len(groups); n == 0 || groups[n-1].TheaterID != d.TheaterID {
			groups = append(groups, TheaterShowtimes{
				TheaterID:   d.TheaterID,
				TheaterName: d.TheaterName,
				Location:    d.TheaterLocation,
				City:        d.TheaterCity,
				Showtimes:   []repository.ShowtimeDetail{},
			})
		}
		n := len(groups) - 1
		groups[n].Showtimes = append(groups[n].Showtimes, d)
	}
	return groups
}

// ListForMovie returns a movie's showtimes on a date, grouped by theater.
// The date query parameter defaults to today (UTC).
func (h *ShowtimeHandler) ListForMovie(c echo.Context) error {
	movieID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	date := strings.TrimSpace(c.QueryParam("date"))
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	details, err := h.Showtimes.ListForMovieDate(ctx, movieID, date)
	if err != nil {
		logrus.Errorf("showtime: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":     date,
		"theaters": groupShowtimes(details),
	})
}

// SeatInfo is one seat cell of the rendered seat map.
type SeatInfo struct {
	Label      string `json:"label"`
	Class      string `json:"class"`
	PriceCents uint32 `json:"price_cents"`
	Occupied   bool   `json:"occupied"`
}

// SeatRow is one row of the rendered seat map, in display order.
type SeatRow struct {
	Row   string     `json:"row"`
	Seats []SeatInfo `json:"seats"`
}

// SeatMap renders the full seat map of a showtime: every seat with its
// class, price and live occupancy. Occupancy here is advisory; the booking
// transaction re-validates before committing.
func (h *ShowtimeHandler) SeatMap(c echo.Context) error {
	showtimeID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	st, err := h.Showtimes.GetByID(ctx, showtimeID)
	if err != nil {
		if err == repository.ErrShowtimeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		logrus.Errorf("showtime: get failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	screen, err := h.Screens.GetByID(ctx, st.ScreenID)
	if err != nil {
		logrus.Errorf("showtime: load screen %d failed: %v", st.ScreenID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	layout, err := seatmap.Parse(screen.Layout)
	if err != nil {
		logrus.Errorf("showtime: bad layout on screen %d: %v", screen.ID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "invalid screen layout"})
	}
	occupied, err := h.Bookings.OccupiedSeats(ctx, showtimeID)
	if err != nil {
		logrus.Errorf("showtime: load occupancy failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	taken := make(map[string]bool, len(occupied))
	for _, s := range occupied {
		taken[s] = true
	}

	prices := seatmap.Prices{
		PremiumCents: st.PricePremiumCents,
		GoldCents:    st.PriceGoldCents,
		RegularCents: st.PriceRegularCents,
	}
	rows := buildSeatRows(layout, prices, taken)

	return c.JSON(http.StatusOK, echo.Map{
		"showtime_id": st.ID,
		"show_date":   st.ShowDate,
		"show_time":   st.ShowTime,
		"screen": echo.Map{
			"id":     screen.ID,
			"name":   screen.Name,
			"format": screen.Format,
		},
		"prices": echo.Map{
			"premium_cents": st.PricePremiumCents,
			"gold_cents":    st.PriceGoldCents,
			"regular_cents": st.PriceRegularCents,
		},
		"rows": rows,
	})
}

func buildSeatRows(layout *seatmap.Layout, prices seatmap.Prices, taken map[string]bool) []SeatRow {
	rows := make([]SeatRow, 0, layout.Rows)
	for _, rowLabel := range layout.RowLabels() {
		row := SeatRow{Row: rowLabel, Seats: make([]SeatInfo, 0, layout.SeatsPerRow)}
		class := layout.Class(rowLabel)
		for n := 1; n <= layout.SeatsPerRow; n++ {
			label := rowLabel + strconv.Itoa(n)
			price, _ := layout.PriceFor(label, prices)
			row.Seats = append(row.Seats, SeatInfo{
				Label:      label,
				Class:      class,
				PriceCents: price,
				Occupied:   taken[label],
			})
		}
		rows = append(rows, row)
	}
	return rows
}

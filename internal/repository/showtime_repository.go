package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/quickshow/quickshow-api/internal/model"
)

// ErrShowtimeNotFound indicates that a showtime was not located in the DB.
var ErrShowtimeNotFound = errors.New("showtime not found")

// ShowtimeDetail is a showtime enriched with theater and screen metadata
// for catalog display. Grouping by theater happens in the handler; the
// repository returns a flat, deterministically ordered list.
type ShowtimeDetail struct {
	ID                uint64 `json:"id"`
	MovieID           uint64 `json:"movie_id"`
	TheaterID         uint64 `json:"theater_id"`
	TheaterName       string `json:"theater_name"`
	TheaterLocation   string `json:"theater_location"`
	TheaterCity       string `json:"theater_city"`
	ScreenID          uint64 `json:"screen_id"`
	ScreenName        string `json:"screen_name"`
	ScreenFormat      string `json:"screen_format"`
	ShowDate          string `json:"show_date"`
	ShowTime          string `json:"show_time"`
	PricePremiumCents uint32 `json:"price_premium_cents"`
	PriceGoldCents    uint32 `json:"price_gold_cents"`
	PriceRegularCents uint32 `json:"price_regular_cents"`
}

// ShowtimeRepo manages persistence for showtimes.
type ShowtimeRepo struct {
	db *sql.DB
}

// NewShowtimeRepo constructs a ShowtimeRepo with the given DB handle.
func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo { return &ShowtimeRepo{db: db} }

// DB exposes the underlying sql.DB. It allows callers to begin
// transactions spanning multiple repositories.
func (r *ShowtimeRepo) DB() *sql.DB { return r.db }

// ListForMovieDate returns all showtimes of a movie on a date, each
// enriched with its theater and screen. Only showtimes in approved
// theaters are listed. Ordered by theater name then start time.
func (r *ShowtimeRepo) ListForMovieDate(ctx context.Context, movieID uint64, date string) ([]ShowtimeDetail, error) {
	const q = `SELECT st.id, st.movie_id, st.theater_id, t.name, t.location, t.city,
	                  st.screen_id, sc.name, sc.format,
	                  st.show_date, st.show_time,
	                  st.price_premium_cents, st.price_gold_cents, st.price_regular_cents
	           FROM showtimes st
	           JOIN theaters t ON t.id = st.theater_id
	           JOIN screens sc ON sc.id = st.screen_id
	           WHERE st.movie_id = ? AND st.show_date = ? AND t.status = ?
	           ORDER BY t.name, st.show_time`
	rows, err := r.db.QueryContext(ctx, q, movieID, date, model.TheaterApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]ShowtimeDetail, 0)
	for rows.Next() {
		var d ShowtimeDetail
		if err := rows.Scan(
			&d.ID, &d.MovieID, &d.TheaterID, &d.TheaterName, &d.TheaterLocation, &d.TheaterCity,
			&d.ScreenID, &d.ScreenName, &d.ScreenFormat,
			&d.ShowDate, &d.ShowTime,
			&d.PricePremiumCents, &d.PriceGoldCents, &d.PriceRegularCents,
		); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// GetByID returns a single showtime or ErrShowtimeNotFound.
func (r *ShowtimeRepo) GetByID(ctx context.Context, id uint64) (model.Showtime, error) {
	var s model.Showtime
	err := r.db.QueryRowContext(ctx,
		`SELECT id, movie_id, theater_id, screen_id, show_date, show_time,
		        price_premium_cents, price_gold_cents, price_regular_cents,
		        created_at, updated_at
		 FROM showtimes WHERE id = ?`, id).Scan(
		&s.ID, &s.MovieID, &s.TheaterID, &s.ScreenID, &s.ShowDate, &s.ShowTime,
		&s.PricePremiumCents, &s.PriceGoldCents, &s.PriceRegularCents,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Showtime{}, ErrShowtimeNotFound
		}
		return model.Showtime{}, err
	}
	return s, nil
}

// StartsAt combines a showtime's date and time columns into a UTC instant.
func StartsAt(s model.Showtime) (time.Time, error) {
	return time.Parse("2006-01-02 15:04:05", s.ShowDate+" "+s.ShowTime)
}

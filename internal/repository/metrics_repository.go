package repository

import (
	"context"
	"database/sql"

	"github.com/quickshow/quickshow-api/internal/model"
)

// TheaterMetrics are the live counters shown on the theater-admin
// dashboard, scoped to a single theater.
type TheaterMetrics struct {
	Showtimes    uint64 `json:"showtimes"`
	Bookings     uint64 `json:"bookings"`
	SeatsSold    uint64 `json:"seats_sold"`
	RevenueCents uint64 `json:"revenue_cents"`
	CheckedIn    uint64 `json:"checked_in"`
}

// PlatformMetrics are the global counters shown on the platform-owner
// dashboard.
type PlatformMetrics struct {
	Users           uint64 `json:"users"`
	Movies          uint64 `json:"movies"`
	Theaters        uint64 `json:"theaters"`
	PendingTheaters uint64 `json:"pending_theaters"`
	Bookings        uint64 `json:"bookings"`
	RevenueCents    uint64 `json:"revenue_cents"`
}

// MetricsRepo computes dashboard aggregates with plain COUNT/SUM queries.
// At catalog scale this is cheap enough to run per request; the response
// cache in front of the dashboard routes absorbs repeated loads.
type MetricsRepo struct {
	db *sql.DB
}

// NewMetricsRepo constructs a MetricsRepo with the given DB handle.
func NewMetricsRepo(db *sql.DB) *MetricsRepo { return &MetricsRepo{db: db} }

// ForTheater aggregates confirmed-booking counters for one theater.
func (r *MetricsRepo) ForTheater(ctx context.Context, theaterID uint64) (TheaterMetrics, error) {
	var m TheaterMetrics
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM showtimes WHERE theater_id = ?`, theaterID).Scan(&m.Showtimes); err != nil {
		return m, err
	}
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(b.total_cents), 0),
		        COALESCE(SUM(b.checked_in), 0)
		 FROM bookings b
		 JOIN showtimes st ON st.id = b.showtime_id
		 WHERE st.theater_id = ? AND b.status = ?`,
		theaterID, model.BookingConfirmed).Scan(&m.Bookings, &m.RevenueCents, &m.CheckedIn)
	if err != nil {
		return m, err
	}
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*)
		 FROM booking_seats bs
		 JOIN bookings b ON b.id = bs.booking_id
		 JOIN showtimes st ON st.id = b.showtime_id
		 WHERE st.theater_id = ? AND b.status = ?`,
		theaterID, model.BookingConfirmed).Scan(&m.SeatsSold)
	return m, err
}

// ForPlatform aggregates the global counters.
func (r *MetricsRepo) ForPlatform(ctx context.Context) (PlatformMetrics, error) {
	var m PlatformMetrics
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users`).Scan(&m.Users); err != nil {
		return m, err
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM movies`).Scan(&m.Movies); err != nil {
		return m, err
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM theaters WHERE status = ?`, model.TheaterApproved).Scan(&m.Theaters); err != nil {
		return m, err
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM theaters WHERE status = ?`, model.TheaterPending).Scan(&m.PendingTheaters); err != nil {
		return m, err
	}
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total_cents), 0)
		 FROM bookings WHERE status = ?`, model.BookingConfirmed).Scan(&m.Bookings, &m.RevenueCents)
	return m, err
}

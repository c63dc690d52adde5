package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/quickshow/quickshow-api/internal/model"
)

// ErrScreenNotFound indicates that a screen was not located in the DB.
var ErrScreenNotFound = errors.New("screen not found")

// ScreenRepo manages persistence for screens. The layout column holds the
// JSON seat-layout descriptor consumed by the seatmap package.
type ScreenRepo struct {
	db *sql.DB
}

// NewScreenRepo constructs a ScreenRepo with the given DB handle.
func NewScreenRepo(db *sql.DB) *ScreenRepo { return &ScreenRepo{db: db} }

// GetByID returns a single screen or ErrScreenNotFound.
func (r *ScreenRepo) GetByID(ctx context.Context, id uint64) (model.Screen, error) {
	var s model.Screen
	err := r.db.QueryRowContext(ctx,
		`SELECT id, theater_id, name, format, layout, created_at, updated_at
		 FROM screens WHERE id = ?`, id).Scan(
		&s.ID, &s.TheaterID, &s.Name, &s.Format, &s.Layout, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Screen{}, ErrScreenNotFound
		}
		return model.Screen{}, err
	}
	return s, nil
}

// ListByTheater returns all screens of a theater ordered by name.
func (r *ScreenRepo) ListByTheater(ctx context.Context, theaterID uint64) ([]model.Screen, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, theater_id, name, format, layout, created_at, updated_at
		 FROM screens WHERE theater_id = ? ORDER BY name`, theaterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	screens := make([]model.Screen, 0)
	for rows.Next() {
		var s model.Screen
		if err := rows.Scan(&s.ID, &s.TheaterID, &s.Name, &s.Format, &s.Layout, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		screens = append(screens, s)
	}
	return screens, rows.Err()
}

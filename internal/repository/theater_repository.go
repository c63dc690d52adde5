package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/quickshow/quickshow-api/internal/model"
)

// ErrTheaterNotFound indicates that a theater was not located in the DB.
var ErrTheaterNotFound = errors.New("theater not found")

// TheaterRepo manages persistence for theaters. Theaters enter the system
// as PENDING and are the only records mutated by the platform-owner
// approval workflow.
type TheaterRepo struct {
	db *sql.DB
}

// NewTheaterRepo constructs a TheaterRepo with the given DB handle.
func NewTheaterRepo(db *sql.DB) *TheaterRepo { return &TheaterRepo{db: db} }

const theaterCols = `id, name, location, city, status, admin_id, created_at, updated_at`

func scanTheater(row interface{ Scan(...interface{}) error }) (model.Theater, error) {
	var (
		t       model.Theater
		adminID sql.NullInt64
	)
	err := row.Scan(&t.ID, &t.Name, &t.Location, &t.City, &t.Status, &adminID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return model.Theater{}, err
	}
	if adminID.Valid {
		aid := uint64(adminID.Int64)
		t.AdminID = &aid
	}
	return t, nil
}

// ListApproved returns approved theaters, optionally restricted to a city
// (exact match). Only approved theaters are visible to customers.
func (r *TheaterRepo) ListApproved(ctx context.Context, city string) ([]model.Theater, error) {
	q := `SELECT ` + theaterCols + ` FROM theaters WHERE status = ?`
	args := []interface{}{model.TheaterApproved}
	if city != "" {
		q += ` AND city = ?`
		args = append(args, city)
	}
	q += ` ORDER BY name`
	return r.list(ctx, q, args...)
}

// ListByStatus returns all theaters in the given approval status, oldest
// first so the platform owner reviews submissions in arrival order.
func (r *TheaterRepo) ListByStatus(ctx context.Context, status string) ([]model.Theater, error) {
	return r.list(ctx,
		`SELECT `+theaterCols+` FROM theaters WHERE status = ? ORDER BY created_at`, status)
}

func (r *TheaterRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Theater, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	theaters := make([]model.Theater, 0)
	for rows.Next() {
		t, err := scanTheater(rows)
		if err != nil {
			return nil, err
		}
		theaters = append(theaters, t)
	}
	return theaters, rows.Err()
}

// GetByID returns a single theater or ErrTheaterNotFound.
func (r *TheaterRepo) GetByID(ctx context.Context, id uint64) (model.Theater, error) {
	t, err := scanTheater(r.db.QueryRowContext(ctx,
		`SELECT `+theaterCols+` FROM theaters WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Theater{}, ErrTheaterNotFound
	}
	return t, err
}

// GetByAdmin returns the theater managed by the given THEATER_ADMIN user,
// or ErrTheaterNotFound when none is assigned.
func (r *TheaterRepo) GetByAdmin(ctx context.Context, adminID uint64) (model.Theater, error) {
	t, err := scanTheater(r.db.QueryRowContext(ctx,
		`SELECT `+theaterCols+` FROM theaters WHERE admin_id = ? LIMIT 1`, adminID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Theater{}, ErrTheaterNotFound
	}
	return t, err
}

// UpdateStatus moves a theater to APPROVED or REJECTED. It returns
// ErrTheaterNotFound when no row matches the id. Updating a theater to a
// status it already has is a no-op and not an error.
func (r *TheaterRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE theaters SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the row is absent or already in the target status;
		// disambiguate with a lookup.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

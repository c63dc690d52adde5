package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/quickshow/quickshow-api/internal/model"
)

// ErrMovieNotFound indicates that a movie was not located in the DB.
var ErrMovieNotFound = errors.New("movie not found")

// MovieFilter narrows a catalog listing. Query matches the title by
// case-insensitive substring; Language, Genre and Status are exact
// matches. Zero values mean "no filter". The catalog is small enough that
// no pagination is applied.
type MovieFilter struct {
	Query    string
	Language string
	Genre    string
	Status   string
}

// MovieRepo manages persistence for the movie catalog. Movies are
// read-only from the application's perspective; rows are seeded out of
// band.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

const movieCols = `id, title, description, poster_url, trailer_url, duration_min,
	language, genre, rating, release_date, status, COALESCE(casts, ''), created_at, updated_at`

// List returns all movies matching the filter, newest release first.
func (r *MovieRepo) List(ctx context.Context, f MovieFilter) ([]model.Movie, error) {
	q := `SELECT ` + movieCols + ` FROM movies WHERE 1=1`
	args := make([]interface{}, 0, 4)
	if s := strings.TrimSpace(f.Query); s != "" {
		q += ` AND LOWER(title) LIKE ?`
		args = append(args, "%"+strings.ToLower(s)+"%")
	}
	if f.Language != "" {
		q += ` AND language = ?`
		args = append(args, f.Language)
	}
	if f.Genre != "" {
		q += ` AND genre = ?`
		args = append(args, f.Genre)
	}
	if f.Status != "" {
		q += ` AND status = ?`
		args = append(args, f.Status)
	}
	q += ` ORDER BY release_date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	movies := make([]model.Movie, 0)
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(
			&m.ID, &m.Title, &m.Description, &m.PosterURL, &m.TrailerURL, &m.DurationMin,
			&m.Language, &m.Genre, &m.Rating, &m.ReleaseDate, &m.Status, &m.Casts,
			&m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// GetByID returns a single movie or ErrMovieNotFound.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (model.Movie, error) {
	var m model.Movie
	err := r.db.QueryRowContext(ctx,
		`SELECT `+movieCols+` FROM movies WHERE id = ?`, id).Scan(
		&m.ID, &m.Title, &m.Description, &m.PosterURL, &m.TrailerURL, &m.DurationMin,
		&m.Language, &m.Genre, &m.Rating, &m.ReleaseDate, &m.Status, &m.Casts,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Movie{}, ErrMovieNotFound
		}
		return model.Movie{}, err
	}
	return m, nil
}

package repository

import (
	"context"
	"database/sql"

	"github.com/quickshow/quickshow-api/internal/model"
)

// ReviewRepo manages the append-only reviews table.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo constructs a ReviewRepo with the given DB handle.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// Create appends a review and populates the generated ID.
func (r *ReviewRepo) Create(ctx context.Context, rev *model.Review) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (movie_id, user_id, rating, comment) VALUES (?, ?, ?, ?)`,
		rev.MovieID, rev.UserID, rev.Rating, rev.Comment)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rev.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		`SELECT created_at FROM reviews WHERE id = ?`, rev.ID).Scan(&rev.CreatedAt)
}

// ListByMovie returns all reviews for a movie, newest first, with the
// reviewer's display name joined in.
func (r *ReviewRepo) ListByMovie(ctx context.Context, movieID uint64) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT rv.id, rv.movie_id, rv.user_id, u.name, rv.rating, rv.comment, rv.created_at
		 FROM reviews rv
		 JOIN users u ON u.id = rv.user_id
		 WHERE rv.movie_id = ?
		 ORDER BY rv.created_at DESC, rv.id DESC`, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reviews := make([]model.Review, 0)
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ID, &rev.MovieID, &rev.UserID, &rev.UserName,
			&rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

package model

import "time"

// Movie catalog statuses. The catalog is partitioned into "now showing"
// and "coming soon" purely by this column.
const (
	MovieNowShowing = "NOW_SHOWING"
	MovieComingSoon = "COMING_SOON"
)

// Movie represents a film in the catalog. Movies are read-only from the
// customer-facing API; the Casts field holds an opaque JSON blob of
// cast/crew entries rendered as-is by clients.
type Movie struct {
	ID          uint64    // movies.id
	Title       string    // movies.title
	Description string    // movies.description
	PosterURL   string    // movies.poster_url
	TrailerURL  string    // movies.trailer_url
	DurationMin uint32    // movies.duration_min
	Language    string    // movies.language
	Genre       string    // movies.genre
	Rating      float64   // movies.rating (0..10)
	ReleaseDate string    // movies.release_date ("YYYY-MM-DD")
	Status      string    // movies.status (NOW_SHOWING, COMING_SOON)
	Casts       string    // movies.casts (JSON blob, nullable in DB)
	CreatedAt   time.Time // movies.created_at
	UpdatedAt   time.Time // movies.updated_at
}

// Review is an append-only user rating for a movie.
type Review struct {
	ID        uint64    // reviews.id
	MovieID   uint64    // reviews.movie_id
	UserID    uint64    // reviews.user_id
	UserName  string    // joined from users.name for display
	Rating    uint8     // reviews.rating (1..5)
	Comment   string    // reviews.comment
	CreatedAt time.Time // reviews.created_at
}

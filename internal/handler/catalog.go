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

// CatalogHandler serves the public movie and theater catalog. Everything
// here is read-only except review submission.
type CatalogHandler struct {
	Movies   *repository.MovieRepo
	Theaters *repository.TheaterRepo
	Reviews  *repository.ReviewRepo
}

func NewCatalogHandler(m *repository.MovieRepo, t *repository.TheaterRepo, rv *repository.ReviewRepo) *CatalogHandler {
	return &CatalogHandler{Movies: m, Theaters: t, Reviews: rv}
}

// PublicMovie represents a movie exposed via the public API.
type PublicMovie struct {
	ID          uint64  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	PosterURL   string  `json:"poster_url"`
	TrailerURL  string  `json:"trailer_url"`
	DurationMin uint32  `json:"duration_min"`
	Language    string  `json:"language"`
	Genre       string  `json:"genre"`
	Rating      float64 `json:"rating"`
	ReleaseDate string  `json:"release_date"`
	Status      string  `json:"status"`
	Casts       string  `json:"casts,omitempty"`
}

// PublicTheater represents an approved theater exposed via the public API.
type PublicTheater struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	City     string `json:"city"`
}

// PublicReview represents a review with the author's display name.
type PublicReview struct {
	ID        uint64    `json:"id"`
	MovieID   uint64    `json:"movie_id"`
	UserName  string    `json:"user_name"`
	Rating    uint8     `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func toPublicMovie(m model.Movie) PublicMovie {
	return PublicMovie{
		ID: m.ID, Title: m.Title, Description: m.Description,
		PosterURL: m.PosterURL, TrailerURL: m.TrailerURL, DurationMin: m.DurationMin,
		Language: m.Language, Genre: m.Genre, Rating: m.Rating,
		ReleaseDate: m.ReleaseDate, Status: m.Status, Casts: m.Casts,
	}
}

func toPublicMovies(movies []model.Movie) []PublicMovie {
	out := make([]PublicMovie, 0, len(movies))
	for _, m := range movies {
		out = append(out, toPublicMovie(m))
	}
	return out
}

func toPublicReviews(reviews []model.Review) []PublicReview {
	out := make([]PublicReview, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, PublicReview{
			ID: rv.ID, MovieID: rv.MovieID, UserName: rv.UserName,
			Rating: rv.Rating, Comment: rv.Comment, CreatedAt: rv.CreatedAt,
		})
	}
	return out
}

// partitionMovies splits a catalog listing into the two display shelves.
// Any status other than NOW_SHOWING lands on the coming-soon shelf, so a
// future status value degrades visibly instead of vanishing.
func partitionMovies(movies []model.Movie) (nowShowing, comingSoon []model.Movie) {
	nowShowing = make([]model.Movie, 0, len(movies))
	comingSoon = make([]model.Movie, 0)
	for _, m := range movies {
		if m.Status == model.MovieNowShowing {
			nowShowing = append(nowShowing, m)
		} else {
			comingSoon = append(comingSoon, m)
		}
	}
	return nowShowing, comingSoon
}

// ListMovies returns the catalog. Without a status filter the response is
// partitioned into now_showing and coming_soon shelves; with one it is a
// flat list.
func (h *CatalogHandler) ListMovies(c echo.Context) error {
	f := repository.MovieFilter{
		Query:    c.QueryParam("q"),
		Language: c.QueryParam("language"),
		Genre:    c.QueryParam("genre"),
		Status:   strings.ToUpper(strings.TrimSpace(c.QueryParam("status"))),
	}
	if f.Status != "" && f.Status != model.MovieNowShowing && f.Status != model.MovieComingSoon {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status filter"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movies, err := h.Movies.List(ctx, f)
	if err != nil {
		logrus.Errorf("catalog: list movies failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if f.Status != "" {
		return c.JSON(http.StatusOK, echo.Map{"items": toPublicMovies(movies)})
	}
	now, soon := partitionMovies(movies)
	return c.JSON(http.StatusOK, echo.Map{
		"now_showing": toPublicMovies(now),
		"coming_soon": toPublicMovies(soon),
	})
}

// GetMovie returns one movie with its reviews.
func (h *CatalogHandler) GetMovie(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		logrus.Errorf("catalog: get movie failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	reviews, err := h.Reviews.ListByMovie(ctx, id)
	if err != nil {
		logrus.Errorf("catalog: list reviews failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"movie":   toPublicMovie(m),
		"reviews": toPublicReviews(reviews),
	})
}

// ListReviews returns the reviews of one movie, newest first.
func (h *CatalogHandler) ListReviews(c echo.Context) error {
	movieID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reviews, err := h.Reviews.ListByMovie(ctx, movieID)
	if err != nil {
		logrus.Errorf("catalog: list reviews failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": toPublicReviews(reviews)})
}

// ListTheaters returns approved theaters, optionally filtered by city.
func (h *CatalogHandler) ListTheaters(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	theaters, err := h.Theaters.ListApproved(ctx, strings.TrimSpace(c.QueryParam("city")))
	if err != nil {
		logrus.Errorf("catalog: list theaters failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicTheater, 0, len(theaters))
	for _, t := range theaters {
		out = append(out, PublicTheater{ID: t.ID, Name: t.Name, Location: t.Location, City: t.City})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

type reviewReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// CreateReview appends a review on a movie for the authenticated user.
func (h *CatalogHandler) CreateReview(c echo.Context) error {
	movieID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be 1-5"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Reject reviews on unknown movies before inserting.
	if _, err := h.Movies.GetByID(ctx, movieID); err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	rev := model.Review{
		MovieID: movieID,
		UserID:  uid,
		Rating:  uint8(req.Rating),
		Comment: strings.TrimSpace(req.Comment),
	}
	if err := h.Reviews.Create(ctx, &rev); err != nil {
		logrus.Errorf("catalog: create review failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, PublicReview{
		ID: rev.ID, MovieID: rev.MovieID, Rating: rev.Rating,
		Comment: rev.Comment, CreatedAt: rev.CreatedAt,
	})
}

package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quickshow/quickshow-api/internal/model"
)

func TestPartitionMovies(t *testing.T) {
	movies := []model.Movie{
		{ID: 1, Status: model.MovieNowShowing},
		{ID: 2, Status: model.MovieComingSoon},
		{ID: 3, Status: model.MovieNowShowing},
		{ID: 4, Status: "ARCHIVED"}, // unknown status lands on coming-soon
	}

	now, soon := partitionMovies(movies)

	assert.Len(t, now, 2)
	assert.Equal(t, uint64(1), now[0].ID)
	assert.Equal(t, uint64(3), now[1].ID)

	assert.Len(t, soon, 2)
	assert.Equal(t, uint64(2), soon[0].ID)
	assert.Equal(t, uint64(4), soon[1].ID)
}

func TestPartitionMoviesEmpty(t *testing.T) {
	now, soon := partitionMovies(nil)
	// Both slices must be non-nil so they serialize as [] rather than null.
	assert.NotNil(t, now)
	assert.NotNil(t, soon)
	assert.Empty(t, now)
	assert.Empty(t, soon)
}

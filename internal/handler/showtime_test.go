package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickshow/quickshow-api/internal/repository"
	"github.com/quickshow/quickshow-api/internal/seatmap"
)

func TestGroupShowtimes(t *testing.T) {
	details := []repository.ShowtimeDetail{
		{ID: 1, TheaterID: 10, TheaterName: "Alpha", ShowTime: "14:00:00"},
		{ID: 2, TheaterID: 10, TheaterName: "Alpha", ShowTime: "18:00:00"},
		{ID: 3, TheaterID: 20, TheaterName: "Beta", ShowTime: "15:30:00"},
	}

	groups := groupShowtimes(details)

	require.Len(t, groups, 2)
	assert.Equal(t, uint64(10), groups[0].TheaterID)
	assert.Equal(t, "Alpha", groups[0].TheaterName)
	require.Len(t, groups[0].Showtimes, 2)
	assert.Equal(t, uint64(1), groups[0].Showtimes[0].ID)
	assert.Equal(t, uint64(2), groups[0].Showtimes[1].ID)

	assert.Equal(t, uint64(20), groups[1].TheaterID)
	require.Len(t, groups[1].Showtimes, 1)
	assert.Equal(t, uint64(3), groups[1].Showtimes[0].ID)
}

func TestGroupShowtimesEmpty(t *testing.T) {
	groups := groupShowtimes(nil)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestBuildSeatRows(t *testing.T) {
	layout, err := seatmap.Parse(`{"rows": 3, "seats_per_row": 2, "premium_rows": ["A"], "gold_rows": ["B"]}`)
	require.NoError(t, err)
	prices := seatmap.Prices{PremiumCents: 1500, GoldCents: 1000, RegularCents: 700}
	taken := map[string]bool{"B2": true}

	rows := buildSeatRows(layout, prices, taken)

	require.Len(t, rows, 3)
	assert.Equal(t, "A", rows[0].Row)
	require.Len(t, rows[0].Seats, 2)
	assert.Equal(t, SeatInfo{Label: "A1", Class: seatmap.ClassPremium, PriceCents: 1500}, rows[0].Seats[0])

	assert.Equal(t, "B", rows[1].Row)
	assert.True(t, rows[1].Seats[1].Occupied, "B2 is occupied")
	assert.False(t, rows[1].Seats[0].Occupied)
	assert.Equal(t, uint32(1000), rows[1].Seats[0].PriceCents)

	assert.Equal(t, "C", rows[2].Row)
	assert.Equal(t, seatmap.ClassRegular, rows[2].Seats[0].Class)
	assert.Equal(t, uint32(700), rows[2].Seats[0].PriceCents)
}

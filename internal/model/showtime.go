package model

import "time"

// Showtime schedules a movie on a screen at a date and time, with one
// price per seat class. Prices are stored in cents.
// NOTE: ShowDate is "YYYY-MM-DD" and ShowTime "HH:MM:SS", both UTC.
type Showtime struct {
	ID                uint64    // showtimes.id
	MovieID           uint64    // showtimes.movie_id
	TheaterID         uint64    // showtimes.theater_id
	ScreenID          uint64    // showtimes.screen_id
	ShowDate          string    // showtimes.show_date
	ShowTime          string    // showtimes.show_time
	PricePremiumCents uint32    // showtimes.price_premium_cents
	PriceGoldCents    uint32    // showtimes.price_gold_cents
	PriceRegularCents uint32    // showtimes.price_regular_cents
	CreatedAt         time.Time // showtimes.created_at
	UpdatedAt         time.Time // showtimes.updated_at
}

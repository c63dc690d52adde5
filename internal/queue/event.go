// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// BookingCreatedEvent is published when a booking is successfully created.
// It carries enough context for downstream consumers to log, notify or
// feed analytics without querying the primary database.
type BookingCreatedEvent struct {
	BookingID   uint64   `json:"booking_id"`
	UserID      uint64   `json:"user_id"`
	ShowtimeID  uint64   `json:"showtime_id"`
	MovieTitle  string   `json:"movie_title"`
	TheaterName string   `json:"theater_name"`
	ScreenName  string   `json:"screen_name"`
	ShowDate    string   `json:"show_date"`
	ShowTime    string   `json:"show_time"`
	Seats       []string `json:"seats"`
	TotalCents  uint32   `json:"total_cents"`
	CreatedAt   string   `json:"created_at"`
}

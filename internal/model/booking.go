package model

import "time"

// Booking statuses. Only CONFIRMED bookings occupy their seats and are
// eligible for check-in.
const (
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
	BookingRefunded  = "REFUNDED"
)

// Payment statuses.
const (
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
)

// Booking records a user's reservation of one or more seats for a
// showtime. CheckinCode is an opaque random token presented at the venue
// and consumed exactly once: CheckedIn flips to true with CheckedInAt set,
// and the transition is not reversible through the API.
//
// Fields:
//
//	ID            – primary key identifier.
//	UserID        – user who made the booking.
//	ShowtimeID    – showtime being booked.
//	Seats         – seat labels (e.g. "A1"), loaded from booking_seats.
//	TotalCents    – total price in cents for all seats.
//	Status        – CONFIRMED, CANCELLED or REFUNDED.
//	PaymentStatus – PENDING or PAID.
//	CheckinCode   – unique random token for venue check-in.
//	CheckedIn     – whether the code has been consumed.
//	CheckedInAt   – when the code was consumed (nil until then).
//	CreatedAt     – creation timestamp.
type Booking struct {
	ID            uint64     // bookings.id
	UserID        uint64     // bookings.user_id
	ShowtimeID    uint64     // bookings.showtime_id
	Seats         []string   // booking_seats.seat_label rows
	TotalCents    uint32     // bookings.total_cents
	Status        string     // bookings.status
	PaymentStatus string     // bookings.payment_status
	CheckinCode   string     // bookings.checkin_code
	CheckedIn     bool       // bookings.checked_in
	CheckedInAt   *time.Time // bookings.checked_in_at (nullable)
	CreatedAt     time.Time  // bookings.created_at
}

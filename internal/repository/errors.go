// Package repository provides raw-SQL data access over MySQL. Failures a
// handler must branch on are reported as sentinel errors; everything else
// surfaces as the driver error.
package repository

import "errors"

// ErrSeatTaken is returned when a booking insert loses the race for one or
// more seats: either the transactional occupancy re-check found them
// claimed, or the (showtime_id, seat_label) unique key rejected the row.
var ErrSeatTaken = errors.New("seat already taken")

package model

import "time"

// Theater approval statuses. Only APPROVED theaters are visible in the
// public catalog; the platform owner moves pending theaters to approved or
// rejected.
const (
	TheaterPending  = "PENDING"
	TheaterApproved = "APPROVED"
	TheaterRejected = "REJECTED"
)

// Theater represents a venue. AdminID references the THEATER_ADMIN user
// who manages it, when one has been assigned.
type Theater struct {
	ID        uint64    // theaters.id
	Name      string    // theaters.name
	Location  string    // theaters.location
	City      string    // theaters.city
	Status    string    // theaters.status (PENDING, APPROVED, REJECTED)
	AdminID   *uint64   // theaters.admin_id (nullable)
	CreatedAt time.Time // theaters.created_at
	UpdatedAt time.Time // theaters.updated_at
}

// Screen is an auditorium within a theater. Layout holds the JSON
// seat-layout descriptor parsed by the seatmap package; it defines the row
// count, seats per row and the row-to-class mapping that drives seat-map
// rendering and pricing.
type Screen struct {
	ID        uint64    // screens.id
	TheaterID uint64    // screens.theater_id
	Name      string    // screens.name
	Format    string    // screens.format (e.g. "2D", "IMAX")
	Layout    string    // screens.layout (JSON seat-layout descriptor)
	CreatedAt time.Time // screens.created_at
	UpdatedAt time.Time // screens.updated_at
}

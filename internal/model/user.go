package model

import "time"

// Application roles. Role is a closed set: registration only ever grants
// RoleCustomer; elevated roles are provisioned out of band.
const (
	RoleCustomer      = "CUSTOMER"
	RoleTheaterAdmin  = "THEATER_ADMIN"
	RolePlatformOwner = "PLATFORM_OWNER"
)

// ValidRole reports whether s is one of the known role names.
func ValidRole(s string) bool {
	switch s {
	case RoleCustomer, RoleTheaterAdmin, RolePlatformOwner:
		return true
	}
	return false
}

// User represents an application user record as stored in the `users`
// table. Exactly one record exists per email; it is created on
// registration with a default role of CUSTOMER. TheaterID is set only for
// THEATER_ADMIN users and scopes their dashboard to a single theater.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Email        – unique email address.
//	PasswordHash – bcrypt hashed password.
//	Name         – display name; defaulted from the email local part.
//	Role         – one of CUSTOMER, THEATER_ADMIN, PLATFORM_OWNER.
//	TheaterID    – theater affiliation (nil unless theater admin).
//	IsActive     – whether the account is active.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64     // users.id
	Email        string     // users.email
	PasswordHash string     // users.password_hash
	Name         string     // users.name
	Role         string     // users.role
	TheaterID    *uint64    // users.theater_id (nullable)
	IsActive     bool       // users.is_active
	CreatedAt    time.Time  // users.created_at
	UpdatedAt    time.Time  // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Each refresh
// token belongs to a user and carries expiry and revocation metadata. The
// plain token is never stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}

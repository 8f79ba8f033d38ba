package model

import "time"

// Roles assignable to a user account. Admins additionally pass the
// role-gated moderation endpoints.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered account. Password always holds a bcrypt hash for
// accounts created by this service; rows imported from the legacy system
// may still carry a "salt$sha256" value until their first successful
// login re-hashes them.
type User struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"size:120;not null" json:"-"`
	Role      string    `gorm:"size:20;not null;default:user" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session is a server-side session record. Only the SHA-256 hash of the
// refresh token is stored; the raw value goes back to the client once.
type Session struct {
	ID        uint64     `gorm:"primaryKey" json:"id"`
	UserID    uint64     `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:64;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

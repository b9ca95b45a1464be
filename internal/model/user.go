package model

import "time"

// Role values stored in users.role. Registration always assigns RoleUser;
// only an admin update can promote an account.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User mirrors the `users` table. PasswordHash holds a bcrypt digest and is
// never serialized; handlers expose users through dedicated response types.
type User struct {
	ID           uint64    // users.id
	Fullname     string    // users.fullname
	Email        string    // users.email (unique, login identifier)
	PasswordHash string    // users.password_hash
	Role         string    // users.role (USER or ADMIN)
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models a row in `refresh_tokens`. Only the SHA-256 hash of the
// raw token is stored; RevokedAt is nil while the token is still active.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}

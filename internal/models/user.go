package models

import "time"

// UserDB represents a user record in the database.
// PasswordHash is never serialized into responses.
type UserDB struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        *string   `json:"email,omitempty" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// AuthUser is the identity attached to a request context after
// token resolution.
type AuthUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

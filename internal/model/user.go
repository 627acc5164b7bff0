package model

import "time"

// User represents a registered account. The password hash never leaves the
// server; it is excluded from JSON serialization.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

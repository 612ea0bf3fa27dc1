package domain

import "time"

// User models a registered account. The password hash never leaves the
// backend; the json tag keeps it out of every response payload.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

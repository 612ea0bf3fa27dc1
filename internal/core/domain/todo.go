package domain

import (
	"errors"
	"time"
)

var ErrTodoNotFound = errors.New("todo not found")
var ErrEmptyText = errors.New("todo text cannot be empty")
var ErrInvalidInput = errors.New("name, email and password are required")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTokenRevoked = errors.New("token revoked")

// Todo is the core aggregate: one task owned by exactly one user.
// Invariant: CompletedAt is non-nil if and only if Completed is true.
type Todo struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	UserID      string     `json:"user_id" bson:"user_id"`
	Text        string     `json:"text" bson:"text"`
	Completed   bool       `json:"completed" bson:"completed"`
	CompletedAt *time.Time `json:"completedAt" bson:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" bson:"created_at"`
}

package ports

import (
	"context"
	"time"

	"github.com/Sandesh007711/todoList/internal/core/domain"
)

// AuthService implements registration, login and token issuance. It is the
// only component that sees plaintext credentials; everything downstream
// works from the owner id resolved out of the bearer token.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	// Login verifies credentials and returns a signed bearer token plus the
	// authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// TokenDenylist records revoked token ids (jti claims) until their natural
// expiry, backing the logout flow.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

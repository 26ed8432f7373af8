package auth

import (
	"context"
	"errors"
)

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrInvalidToken = errors.New("invalid token")
)

// AuthVerifier verifica un token (firma + expiración) y devuelve claims.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

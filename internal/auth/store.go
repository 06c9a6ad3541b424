package auth

import (
	"context"
	"time"

	"BookStore/internal/apperr"
)

var (
	ErrUsernameTaken       = apperr.Conflict("username already exists")
	ErrCredentialsRequired = apperr.InvalidInput("username and password are required")
	ErrPasswordTooLong     = apperr.InvalidInput("password exceeds 72 bytes")
	// ErrInvalidCredentials covers both unknown users and wrong passwords.
	ErrInvalidCredentials = apperr.Unauthorized("invalid credentials")
)

// Account is a registered user. The raw password is never kept.
type Account struct {
	ID        string
	Username  string
	Hash      []byte
	CreatedAt time.Time
}

type Directory interface {
	Register(ctx context.Context, username, password string) (Account, error)
	Login(ctx context.Context, username, password string) (Account, error)
	Ping(ctx context.Context) error
}

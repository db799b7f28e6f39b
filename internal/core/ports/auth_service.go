package ports

import (
	"context"

	"github.com/hirelane/ats/internal/core/domain"
)

// PasswordMatcher decides how credentials are stored and compared.
type PasswordMatcher interface {
	// Hash converts a submitted password into its stored form.
	Hash(password string) (string, error)
	// Match reports whether password matches the stored value.
	Match(stored, password string) bool
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string
	Actor domain.Actor
}

// SessionChecker decides whether an already issued token still speaks for
// an account that may use the API.
type SessionChecker interface {
	// Active reports whether the account behind actor exists and is active.
	Active(ctx context.Context, actor domain.Actor) bool
}

type AuthService interface {
	SessionChecker
	Authenticate(ctx context.Context, username, password string, role domain.Role) (domain.Actor, error)
	Login(ctx context.Context, username, password string, role domain.Role) (*LoginResult, error)
}

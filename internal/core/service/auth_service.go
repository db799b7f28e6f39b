package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/ports"
)

// AuthService implements the login gate for all three dashboards.
type AuthService struct {
	store     ports.EntityStore
	passwords ports.PasswordMatcher
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(store ports.EntityStore, passwords ports.PasswordMatcher, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		store:     store,
		passwords: passwords,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
		now:       utcNow,
	}
}

// Authenticate resolves credentials into an Actor. The role selects which
// collection is searched: clients for the client role, staff users of
// exactly that role otherwise. The first active match wins.
func (s *AuthService) Authenticate(_ context.Context, username, password string, role domain.Role) (domain.Actor, error) {
	if username == "" || password == "" || !role.Valid() {
		return domain.Actor{}, domain.ErrInvalidCredentials
	}

	snap := s.store.Snapshot()
	if role == domain.RoleClient {
		for _, c := range snap.Clients {
			if c.Username == username && c.Active && s.passwords.Match(c.Password, password) {
				return domain.ActorFromClient(c), nil
			}
		}
		return domain.Actor{}, domain.ErrInvalidCredentials
	}

	for _, u := range snap.Users {
		if u.Username == username && u.Role == role && u.Active && s.passwords.Match(u.Password, password) {
			return domain.ActorFromUser(u), nil
		}
	}
	return domain.Actor{}, domain.ErrInvalidCredentials
}

// Active reports whether the account a token was issued to may still act.
// Deactivated, offboarded and removed accounts lose access immediately,
// whatever the token's expiry.
func (s *AuthService) Active(_ context.Context, actor domain.Actor) bool {
	snap := s.store.Snapshot()
	if actor.IsClient() {
		c, ok := snap.FindClient(actor.ID)
		return ok && c.Active
	}
	for _, u := range snap.Users {
		if u.ID == actor.ID {
			return u.Role == actor.Role && u.Active
		}
	}
	return false
}

func (s *AuthService) Login(ctx context.Context, username, password string, role domain.Role) (*ports.LoginResult, error) {
	actor, err := s.Authenticate(ctx, username, password, role)
	if err != nil {
		s.log.Info().Str("username", username).Str("role", string(role)).Msg("login rejected")
		return nil, err
	}

	token, err := s.generateToken(actor)
	if err != nil {
		return nil, fmt.Errorf("login: sign token: %w", err)
	}

	s.log.Info().Str("actor_id", actor.ID).Str("role", string(actor.Role)).Msg("login succeeded")
	return &ports.LoginResult{Token: token, Actor: actor}, nil
}

func (s *AuthService) generateToken(actor domain.Actor) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":       actor.ID,
		"role":      string(actor.Role),
		"name":      actor.Name,
		"email":     actor.Email,
		"client_id": actor.ClientID(),
		"iat":       now.Unix(),
		"exp":       now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// HashCredentials rewrites every stored password in d through passwords.
// It is applied to seed data before the store is built.
func HashCredentials(d *domain.Dataset, passwords ports.PasswordMatcher) error {
	for i := range d.Users {
		h, err := passwords.Hash(d.Users[i].Password)
		if err != nil {
			return fmt.Errorf("hash password for user %s: %w", d.Users[i].ID, err)
		}
		d.Users[i].Password = h
	}
	for i := range d.Clients {
		h, err := passwords.Hash(d.Clients[i].Password)
		if err != nil {
			return fmt.Errorf("hash password for client %s: %w", d.Clients[i].ID, err)
		}
		d.Clients[i].Password = h
	}
	return nil
}

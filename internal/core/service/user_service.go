package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/policy"
	"github.com/hirelane/ats/internal/core/ports"
	"github.com/hirelane/ats/internal/pkg/telemetry"
)

type userService struct {
	store     ports.EntityStore
	passwords ports.PasswordMatcher
	log       zerolog.Logger
	now       func() time.Time
}

// NewUserService returns a UserService implementation.
func NewUserService(store ports.EntityStore, passwords ports.PasswordMatcher, log zerolog.Logger) ports.UserService {
	return &userService{store: store, passwords: passwords, log: log, now: utcNow}
}

func (s *userService) ListUserAdmins(_ context.Context, actor domain.Actor) ([]domain.User, error) {
	if !policy.Can(actor, policy.OpListUsers) {
		return nil, forbidden("list users")
	}
	var out []domain.User
	for _, u := range s.store.Snapshot().Users {
		if u.Role == domain.RoleUserAdmin {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *userService) CreateUserAdmin(_ context.Context, actor domain.Actor, in ports.CreateUserAdminInput) (*domain.User, error) {
	if !policy.Can(actor, policy.OpCreateUserAdmin) {
		return nil, forbidden("create user admin")
	}
	if err := validateInput(in); err != nil {
		return nil, fmt.Errorf("create user admin: %w", err)
	}
	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("create user admin: hash password: %w", err)
	}

	user := domain.User{
		ID:        newID(),
		Username:  in.Username,
		Password:  hash,
		Role:      domain.RoleUserAdmin,
		Name:      in.Name,
		Email:     in.Email,
		CreatedBy: actor.ID,
		CreatedAt: s.now(),
		Active:    true,
	}

	err = s.store.Write(func(tx ports.StoreTx) error {
		if usernameTaken(txDataset(tx), in.Username) {
			return domain.ErrUsernameTaken
		}
		tx.ReplaceUsers(append(tx.Users(), user))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create user admin: %w", err)
	}

	s.log.Info().Str("actor_id", actor.ID).Str("user_id", user.ID).Msg("user admin created")
	return &user, nil
}

// SetUserActive flips the active flag of a user admin. Unknown ids, staff
// of other roles and no-change requests leave the store untouched.
func (s *userService) SetUserActive(_ context.Context, actor domain.Actor, id string, active bool) error {
	if !policy.Can(actor, policy.OpSetUserActive) {
		return forbidden("set user active")
	}

	changed := false
	err := s.store.Write(func(tx ports.StoreTx) error {
		users := tx.Users()
		for i := range users {
			if users[i].ID != id || users[i].Role != domain.RoleUserAdmin {
				continue
			}
			if users[i].Active == active {
				return nil
			}
			users[i].Active = active
			tx.ReplaceUsers(users)
			changed = true
			return nil
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("set user active: %w", err)
	}
	if changed {
		telemetry.StatusChanged("user", telemetry.ActiveLabel(active))
		s.log.Info().Str("actor_id", actor.ID).Str("user_id", id).Bool("active", active).Msg("user admin status changed")
	}
	return nil
}

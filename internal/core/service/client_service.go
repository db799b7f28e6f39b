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

type clientService struct {
	store     ports.EntityStore
	passwords ports.PasswordMatcher
	log       zerolog.Logger
	now       func() time.Time
}

// NewClientService returns a ClientService implementation.
func NewClientService(store ports.EntityStore, passwords ports.PasswordMatcher, log zerolog.Logger) ports.ClientService {
	return &clientService{store: store, passwords: passwords, log: log, now: utcNow}
}

func (s *clientService) ListClients(_ context.Context, actor domain.Actor) ([]domain.Client, error) {
	if !policy.Can(actor, policy.OpListClients) {
		return nil, forbidden("list clients")
	}
	return policy.Scope(actor, s.store.Snapshot()).Clients, nil
}

func (s *clientService) OnboardClient(_ context.Context, actor domain.Actor, in ports.OnboardClientInput) (*domain.Client, error) {
	if !policy.Can(actor, policy.OpOnboardClient) {
		return nil, forbidden("onboard client")
	}
	if err := validateInput(in); err != nil {
		return nil, fmt.Errorf("onboard client: %w", err)
	}
	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("onboard client: hash password: %w", err)
	}

	client := domain.Client{
		ID:            newID(),
		Name:          in.Name,
		Email:         in.Email,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Username:      in.Username,
		Password:      hash,
		OnboardedAt:   s.now(),
		Active:        true,
	}

	err = s.store.Write(func(tx ports.StoreTx) error {
		if usernameTaken(txDataset(tx), in.Username) {
			return domain.ErrUsernameTaken
		}
		tx.ReplaceClients(append(tx.Clients(), client))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("onboard client: %w", err)
	}

	s.log.Info().Str("actor_id", actor.ID).Str("client_id", client.ID).Msg("client onboarded")
	return &client, nil
}

// SetClientActive offboards or reactivates a client. Offboarding must be
// confirmed; an inactive client can no longer log in but keeps its data.
func (s *clientService) SetClientActive(_ context.Context, actor domain.Actor, id string, active, confirmed bool) error {
	if !policy.Can(actor, policy.OpSetClientActive) {
		return forbidden("set client active")
	}

	changed := false
	err := s.store.Write(func(tx ports.StoreTx) error {
		clients := tx.Clients()
		for i := range clients {
			if clients[i].ID != id {
				continue
			}
			if clients[i].Active == active {
				return nil
			}
			if !active && !confirmed {
				return domain.ErrConfirmationRequired
			}
			clients[i].Active = active
			tx.ReplaceClients(clients)
			changed = true
			return nil
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("set client active: %w", err)
	}
	if changed {
		telemetry.StatusChanged("client", telemetry.ActiveLabel(active))
		s.log.Info().Str("actor_id", actor.ID).Str("client_id", id).Bool("active", active).Msg("client status changed")
	}
	return nil
}

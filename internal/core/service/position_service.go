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

type positionService struct {
	store ports.EntityStore
	log   zerolog.Logger
	now   func() time.Time
}

// NewPositionService returns a PositionService implementation.
func NewPositionService(store ports.EntityStore, log zerolog.Logger) ports.PositionService {
	return &positionService{store: store, log: log, now: utcNow}
}

func (s *positionService) ListPositions(_ context.Context, actor domain.Actor, filter ports.ListPositionsFilter) ([]domain.Position, error) {
	if !policy.Can(actor, policy.OpListPositions) {
		return nil, forbidden("list positions")
	}
	var out []domain.Position
	for _, p := range policy.Scope(actor, s.store.Snapshot()).Positions {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.ClientID != "" && p.ClientID != filter.ClientID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// CreatePosition opens a new position. Client actors always create for
// themselves; staff must name an existing client.
func (s *positionService) CreatePosition(_ context.Context, actor domain.Actor, in ports.CreatePositionInput) (*domain.Position, error) {
	if !policy.Can(actor, policy.OpCreatePosition) {
		return nil, forbidden("create position")
	}
	if actor.IsClient() {
		in.ClientID = actor.ClientID()
	}
	if err := validateInput(in); err != nil {
		return nil, fmt.Errorf("create position: %w", err)
	}
	if in.ClientID == "" {
		return nil, fmt.Errorf("create position: %w: client", domain.ErrMissingFields)
	}

	pos := domain.Position{
		ID:          newID(),
		ClientID:    in.ClientID,
		Title:       in.Title,
		Description: in.Description,
		Status:      domain.PositionOpen,
		CreatedAt:   s.now(),
		CreatedBy:   actor.ID,
	}

	err := s.store.Write(func(tx ports.StoreTx) error {
		if _, ok := policy.VisibleClient(actor, txDataset(tx), in.ClientID); !ok {
			return domain.ErrInvalidReference
		}
		tx.ReplacePositions(append(tx.Positions(), pos))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create position: %w", err)
	}

	s.log.Info().Str("actor_id", actor.ID).Str("position_id", pos.ID).Str("client_id", pos.ClientID).Msg("position created")
	return &pos, nil
}

func (s *positionService) UpdatePosition(_ context.Context, actor domain.Actor, in ports.UpdatePositionInput) error {
	if !policy.Can(actor, policy.OpUpdatePosition) {
		return forbidden("update position")
	}
	if err := validateInput(in); err != nil {
		return fmt.Errorf("update position: %w", err)
	}
	return s.mutate(actor, policy.OpUpdatePosition, in.ID, func(p *domain.Position) (bool, error) {
		if p.Title == in.Title && p.Description == in.Description {
			return false, nil
		}
		p.Title = in.Title
		p.Description = in.Description
		return true, nil
	})
}

func (s *positionService) SetPositionStatus(_ context.Context, actor domain.Actor, id string, status domain.PositionStatus) error {
	if !policy.Can(actor, policy.OpSetPositionStatus) {
		return forbidden("set position status")
	}
	if !status.Valid() {
		return fmt.Errorf("set position status: %w: %q", domain.ErrInvalidTransition, status)
	}
	return s.mutate(actor, policy.OpSetPositionStatus, id, func(p *domain.Position) (bool, error) {
		if p.Status == status {
			return false, nil
		}
		if !p.Status.CanTransitionTo(status) {
			return false, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, p.Status, status)
		}
		p.Status = status
		return true, nil
	})
}

func (s *positionService) TogglePosition(_ context.Context, actor domain.Actor, id string) error {
	if !policy.Can(actor, policy.OpSetPositionStatus) {
		return forbidden("toggle position")
	}
	return s.mutate(actor, policy.OpSetPositionStatus, id, func(p *domain.Position) (bool, error) {
		p.Status = p.Status.Toggled()
		return true, nil
	})
}

// DeletePosition removes a position owned by the calling client. Its
// candidates stay in the store but drop out of every view.
func (s *positionService) DeletePosition(_ context.Context, actor domain.Actor, id string, confirmed bool) error {
	if !policy.Can(actor, policy.OpDeletePosition) {
		return forbidden("delete position")
	}
	if !confirmed {
		return fmt.Errorf("delete position: %w", domain.ErrConfirmationRequired)
	}

	deleted := false
	err := s.store.Write(func(tx ports.StoreTx) error {
		p, ok := policy.VisiblePosition(actor, txDataset(tx), id)
		if !ok {
			return nil
		}
		if !policy.CanWritePosition(actor, policy.OpDeletePosition, p) {
			return domain.ErrForbidden
		}
		positions := tx.Positions()
		kept := positions[:0]
		for _, cur := range positions {
			if cur.ID != id {
				kept = append(kept, cur)
			}
		}
		tx.ReplacePositions(kept)
		deleted = true
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete position: %w", err)
	}
	if deleted {
		s.log.Info().Str("actor_id", actor.ID).Str("position_id", id).Msg("position deleted")
	}
	return nil
}

// mutate applies fn to the position with the given id when the actor can
// see it. fn reports whether it changed anything.
func (s *positionService) mutate(actor domain.Actor, op policy.Operation, id string, fn func(p *domain.Position) (bool, error)) error {
	var after domain.Position
	changed := false
	err := s.store.Write(func(tx ports.StoreTx) error {
		p, ok := policy.VisiblePosition(actor, txDataset(tx), id)
		if !ok {
			return nil
		}
		if !policy.CanWritePosition(actor, op, p) {
			return domain.ErrForbidden
		}
		positions := tx.Positions()
		for i := range positions {
			if positions[i].ID != id {
				continue
			}
			ok, err := fn(&positions[i])
			if err != nil || !ok {
				return err
			}
			after = positions[i]
			tx.ReplacePositions(positions)
			changed = true
			return nil
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if changed {
		if op == policy.OpSetPositionStatus {
			telemetry.StatusChanged("position", string(after.Status))
		}
		s.log.Info().
			Str("actor_id", actor.ID).
			Str("position_id", after.ID).
			Str("status", string(after.Status)).
			Str("op", string(op)).
			Msg("position updated")
	}
	return nil
}

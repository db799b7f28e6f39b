package ports

import (
	"context"

	"github.com/hirelane/ats/internal/core/domain"
)

// CreatePositionInput carries the position form. ClientID is ignored for
// client actors, who always create positions for themselves.
type CreatePositionInput struct {
	ClientID    string
	Title       string `validate:"required"`
	Description string `validate:"required"`
}

// UpdatePositionInput edits the descriptive fields of a position.
type UpdatePositionInput struct {
	ID          string
	Title       string `validate:"required"`
	Description string `validate:"required"`
}

// ListPositionsFilter narrows a position listing. Empty fields match all.
type ListPositionsFilter struct {
	Status   domain.PositionStatus
	ClientID string
}

type PositionService interface {
	ListPositions(ctx context.Context, actor domain.Actor, filter ListPositionsFilter) ([]domain.Position, error)
	CreatePosition(ctx context.Context, actor domain.Actor, in CreatePositionInput) (*domain.Position, error)
	UpdatePosition(ctx context.Context, actor domain.Actor, in UpdatePositionInput) error
	SetPositionStatus(ctx context.Context, actor domain.Actor, id string, status domain.PositionStatus) error
	TogglePosition(ctx context.Context, actor domain.Actor, id string) error
	DeletePosition(ctx context.Context, actor domain.Actor, id string, confirmed bool) error
}

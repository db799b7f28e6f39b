package ports

import (
	"context"

	"github.com/hirelane/ats/internal/core/domain"
)

// CreateUserAdminInput carries the fields of the user-admin creation form.
type CreateUserAdminInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
	Name     string `validate:"required"`
	Email    string `validate:"required"`
}

// OnboardClientInput carries the fields of the client onboarding form.
// Phone is optional.
type OnboardClientInput struct {
	Name          string `validate:"required"`
	Email         string `validate:"required"`
	ContactPerson string `validate:"required"`
	Phone         string
	Username      string `validate:"required"`
	Password      string `validate:"required"`
}

// UserService manages staff accounts.
type UserService interface {
	ListUserAdmins(ctx context.Context, actor domain.Actor) ([]domain.User, error)
	CreateUserAdmin(ctx context.Context, actor domain.Actor, in CreateUserAdminInput) (*domain.User, error)
	SetUserActive(ctx context.Context, actor domain.Actor, id string, active bool) error
}

// ClientService manages client onboarding and offboarding.
type ClientService interface {
	ListClients(ctx context.Context, actor domain.Actor) ([]domain.Client, error)
	OnboardClient(ctx context.Context, actor domain.Actor, in OnboardClientInput) (*domain.Client, error)
	// SetClientActive offboards (active=false, requires confirmed) or
	// reactivates a client.
	SetClientActive(ctx context.Context, actor domain.Actor, id string, active, confirmed bool) error
}

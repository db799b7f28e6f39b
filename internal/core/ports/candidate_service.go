package ports

import (
	"context"

	"github.com/hirelane/ats/internal/core/domain"
)

// UploadCandidateInput carries the candidate upload form.
type UploadCandidateInput struct {
	Name       string `validate:"required"`
	Email      string `validate:"required"`
	Phone      string
	PositionID string `validate:"required"`
	Resume     string
}

// ListCandidatesFilter narrows a candidate listing. Empty fields match all.
type ListCandidatesFilter struct {
	PositionID string
	Status     domain.CandidateStatus
}

// CandidateView decorates a candidate with the names the dashboards show.
type CandidateView struct {
	domain.Candidate
	PositionTitle string
	ClientID      string
	ClientName    string
}

type CandidateService interface {
	ListCandidates(ctx context.Context, actor domain.Actor, filter ListCandidatesFilter) ([]CandidateView, error)
	UploadCandidate(ctx context.Context, actor domain.Actor, in UploadCandidateInput) (*domain.Candidate, error)
	// SetCandidateStatus moves a candidate to status. Non-empty notes
	// replace the stored interview notes.
	SetCandidateStatus(ctx context.Context, actor domain.Actor, id string, status domain.CandidateStatus, notes string) error
	AnnotateCandidate(ctx context.Context, actor domain.Actor, id, notes string) error
	ResendRejectionNotice(ctx context.Context, actor domain.Actor, id string) error
}

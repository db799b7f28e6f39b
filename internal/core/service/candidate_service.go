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

const (
	rejectionSubject = "Update on your application"
	rejectionBody    = "Dear %s,\n\n" +
		"Thank you for your interest in our position. After careful consideration, " +
		"we have decided to move forward with other candidates at this time.\n\n" +
		"We wish you the best in your job search.\n\n" +
		"Best regards,\nRecruitment Team"
)

type candidateService struct {
	store    ports.EntityStore
	notifier ports.Notifier
	log      zerolog.Logger
	now      func() time.Time
}

// NewCandidateService returns a CandidateService implementation. Rejections
// are announced through notifier.
func NewCandidateService(store ports.EntityStore, notifier ports.Notifier, log zerolog.Logger) ports.CandidateService {
	return &candidateService{store: store, notifier: notifier, log: log, now: utcNow}
}

func (s *candidateService) ListCandidates(_ context.Context, actor domain.Actor, filter ports.ListCandidatesFilter) ([]ports.CandidateView, error) {
	if !policy.Can(actor, policy.OpListCandidates) {
		return nil, forbidden("list candidates")
	}
	view := policy.Scope(actor, s.store.Snapshot())

	var out []ports.CandidateView
	for _, c := range view.Candidates {
		if filter.PositionID != "" && c.PositionID != filter.PositionID {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		cv := ports.CandidateView{Candidate: c}
		if p, ok := view.FindPosition(c.PositionID); ok {
			cv.PositionTitle = p.Title
			cv.ClientID = p.ClientID
			if cl, ok := view.FindClient(p.ClientID); ok {
				cv.ClientName = cl.Name
			}
		}
		out = append(out, cv)
	}
	return out, nil
}

// UploadCandidate attaches a new pending candidate to an open position.
func (s *candidateService) UploadCandidate(_ context.Context, actor domain.Actor, in ports.UploadCandidateInput) (*domain.Candidate, error) {
	if !policy.Can(actor, policy.OpUploadCandidate) {
		return nil, forbidden("upload candidate")
	}
	if err := validateInput(in); err != nil {
		return nil, fmt.Errorf("upload candidate: %w", err)
	}

	cand := domain.Candidate{
		ID:         newID(),
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		PositionID: in.PositionID,
		Status:     domain.CandidatePending,
		Resume:     in.Resume,
		UploadedBy: actor.ID,
		UploadedAt: s.now(),
	}

	err := s.store.Write(func(tx ports.StoreTx) error {
		p, ok := policy.VisiblePosition(actor, txDataset(tx), in.PositionID)
		if !ok {
			return domain.ErrInvalidReference
		}
		if p.Status != domain.PositionOpen {
			return domain.ErrPositionClosed
		}
		tx.ReplaceCandidates(append(tx.Candidates(), cand))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("upload candidate: %w", err)
	}

	s.log.Info().Str("actor_id", actor.ID).Str("candidate_id", cand.ID).Str("position_id", cand.PositionID).Msg("candidate uploaded")
	return &cand, nil
}

// SetCandidateStatus moves a candidate to status. Entering rejected from
// any other status sends exactly one rejection notice.
func (s *candidateService) SetCandidateStatus(ctx context.Context, actor domain.Actor, id string, status domain.CandidateStatus, notes string) error {
	if !policy.Can(actor, policy.OpSetCandidateStatus) {
		return forbidden("set candidate status")
	}
	if !status.Valid() {
		return fmt.Errorf("set candidate status: %w: %q", domain.ErrInvalidTransition, status)
	}

	var (
		before, after domain.Candidate
		changed       bool
	)
	err := s.mutate(actor, policy.OpSetCandidateStatus, id, func(c *domain.Candidate) (bool, error) {
		if c.Status == status {
			return false, nil
		}
		if !c.Status.CanTransitionTo(status) {
			return false, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, c.Status, status)
		}
		before = *c
		c.Status = status
		if notes != "" {
			c.InterviewNotes = notes
		}
		after = *c
		changed = true
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("set candidate status: %w", err)
	}
	if !changed {
		return nil
	}

	telemetry.StatusChanged("candidate", string(after.Status))
	s.log.Info().
		Str("actor_id", actor.ID).
		Str("candidate_id", id).
		Str("from", string(before.Status)).
		Str("to", string(after.Status)).
		Msg("candidate status changed")

	if after.Status == domain.CandidateRejected {
		s.notifier.Notify(ctx, rejectionNotice(after, s.now()))
	}
	return nil
}

// AnnotateCandidate replaces the interview notes of a visible candidate.
func (s *candidateService) AnnotateCandidate(_ context.Context, actor domain.Actor, id, notes string) error {
	if !policy.Can(actor, policy.OpAnnotateCandidate) {
		return forbidden("annotate candidate")
	}
	err := s.mutate(actor, policy.OpAnnotateCandidate, id, func(c *domain.Candidate) (bool, error) {
		if c.InterviewNotes == notes {
			return false, nil
		}
		c.InterviewNotes = notes
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("annotate candidate: %w", err)
	}
	return nil
}

// ResendRejectionNotice sends the rejection notice again for a candidate
// that is currently rejected.
func (s *candidateService) ResendRejectionNotice(ctx context.Context, actor domain.Actor, id string) error {
	if !policy.Can(actor, policy.OpResendRejection) {
		return forbidden("resend rejection notice")
	}
	c, _, ok := policy.VisibleCandidate(actor, s.store.Snapshot(), id)
	if !ok {
		return nil
	}
	if c.Status != domain.CandidateRejected {
		return fmt.Errorf("resend rejection notice: %w: candidate is %s", domain.ErrInvalidTransition, c.Status)
	}

	s.notifier.Notify(ctx, rejectionNotice(c, s.now()))
	s.log.Info().Str("actor_id", actor.ID).Str("candidate_id", id).Msg("rejection notice resent")
	return nil
}

func (s *candidateService) mutate(actor domain.Actor, op policy.Operation, id string, fn func(c *domain.Candidate) (bool, error)) error {
	return s.store.Write(func(tx ports.StoreTx) error {
		_, p, ok := policy.VisibleCandidate(actor, txDataset(tx), id)
		if !ok {
			return nil
		}
		if !policy.CanWriteCandidate(actor, op, p) {
			return domain.ErrForbidden
		}
		candidates := tx.Candidates()
		for i := range candidates {
			if candidates[i].ID != id {
				continue
			}
			ok, err := fn(&candidates[i])
			if err != nil || !ok {
				return err
			}
			tx.ReplaceCandidates(candidates)
			return nil
		}
		return nil
	})
}

func rejectionNotice(c domain.Candidate, now time.Time) domain.Notification {
	return domain.Notification{
		ID:          newID(),
		Kind:        domain.NotificationRejection,
		CandidateID: c.ID,
		To:          c.Email,
		Subject:     rejectionSubject,
		Body:        fmt.Sprintf(rejectionBody, c.Name),
		CreatedAt:   now,
	}
}

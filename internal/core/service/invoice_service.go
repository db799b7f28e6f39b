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

type invoiceService struct {
	store ports.EntityStore
	log   zerolog.Logger
	now   func() time.Time
}

// NewInvoiceService returns an InvoiceService implementation.
func NewInvoiceService(store ports.EntityStore, log zerolog.Logger) ports.InvoiceService {
	return &invoiceService{store: store, log: log, now: utcNow}
}

// ListInvoices returns the invoices in the actor's scope, each labelled
// paid, pending or overdue as of now.
func (s *invoiceService) ListInvoices(_ context.Context, actor domain.Actor) ([]ports.InvoiceView, error) {
	if !policy.Can(actor, policy.OpListInvoices) {
		return nil, forbidden("list invoices")
	}
	view := policy.Scope(actor, s.store.Snapshot())
	now := s.now()

	out := make([]ports.InvoiceView, 0, len(view.Invoices))
	for _, inv := range view.Invoices {
		iv := ports.InvoiceView{Invoice: inv, Label: inv.Label(now)}
		if c, ok := view.FindClient(inv.ClientID); ok {
			iv.ClientName = c.Name
		}
		out = append(out, iv)
	}
	return out, nil
}

// GenerateInvoice issues a pending invoice to an active client.
func (s *invoiceService) GenerateInvoice(_ context.Context, actor domain.Actor, in ports.GenerateInvoiceInput) (*domain.Invoice, error) {
	if !policy.Can(actor, policy.OpGenerateInvoice) {
		return nil, forbidden("generate invoice")
	}
	if err := validateInput(in); err != nil {
		return nil, fmt.Errorf("generate invoice: %w", err)
	}

	inv := domain.Invoice{
		ID:          newID(),
		ClientID:    in.ClientID,
		Amount:      in.Amount,
		Description: in.Description,
		ProjectName: in.ProjectName,
		GeneratedAt: s.now(),
		Status:      domain.InvoicePending,
		DueDate:     in.DueDate.UTC(),
	}

	err := s.store.Write(func(tx ports.StoreTx) error {
		c, ok := policy.VisibleClient(actor, txDataset(tx), in.ClientID)
		if !ok || !c.Active {
			return domain.ErrInvalidReference
		}
		tx.ReplaceInvoices(append(tx.Invoices(), inv))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("generate invoice: %w", err)
	}

	s.log.Info().Str("actor_id", actor.ID).Str("invoice_id", inv.ID).Str("client_id", inv.ClientID).Float64("amount", inv.Amount).Msg("invoice generated")
	return &inv, nil
}

func (s *invoiceService) SetInvoiceStatus(_ context.Context, actor domain.Actor, id string, status domain.InvoiceStatus) error {
	if !policy.Can(actor, policy.OpSetInvoiceStatus) {
		return forbidden("set invoice status")
	}
	if !status.Valid() {
		return fmt.Errorf("set invoice status: %w: %q", domain.ErrInvalidTransition, status)
	}

	var from domain.InvoiceStatus
	changed := false
	err := s.store.Write(func(tx ports.StoreTx) error {
		if _, ok := policy.VisibleInvoice(actor, txDataset(tx), id); !ok {
			return nil
		}
		invoices := tx.Invoices()
		for i := range invoices {
			if invoices[i].ID != id {
				continue
			}
			if invoices[i].Status == status {
				return nil
			}
			if !invoices[i].Status.CanTransitionTo(status) {
				return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, invoices[i].Status, status)
			}
			from = invoices[i].Status
			invoices[i].Status = status
			tx.ReplaceInvoices(invoices)
			changed = true
			return nil
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("set invoice status: %w", err)
	}
	if changed {
		telemetry.StatusChanged("invoice", string(status))
		s.log.Info().Str("actor_id", actor.ID).Str("invoice_id", id).Str("from", string(from)).Str("to", string(status)).Msg("invoice status changed")
	}
	return nil
}

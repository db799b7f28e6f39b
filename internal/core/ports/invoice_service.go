package ports

import (
	"context"
	"time"

	"github.com/hirelane/ats/internal/core/domain"
)

// GenerateInvoiceInput carries the invoice form.
type GenerateInvoiceInput struct {
	ClientID    string    `validate:"required"`
	Amount      float64   `validate:"gte=0"`
	Description string    `validate:"required"`
	ProjectName string    `validate:"required"`
	DueDate     time.Time `validate:"required"`
}

// InvoiceView adds the derived display label to an invoice.
type InvoiceView struct {
	domain.Invoice
	Label      string
	ClientName string
}

type InvoiceService interface {
	ListInvoices(ctx context.Context, actor domain.Actor) ([]InvoiceView, error)
	GenerateInvoice(ctx context.Context, actor domain.Actor, in GenerateInvoiceInput) (*domain.Invoice, error)
	SetInvoiceStatus(ctx context.Context, actor domain.Actor, id string, status domain.InvoiceStatus) error
}

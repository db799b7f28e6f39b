package domain

import "time"

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
)

var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoicePending: {InvoicePaid},
	InvoicePaid:    {InvoicePending},
}

// Valid reports whether s is a known invoice status.
func (s InvoiceStatus) Valid() bool {
	_, ok := invoiceTransitions[s]
	return ok
}

// CanTransitionTo reports whether an invoice may move from s to next.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	for _, allowed := range invoiceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Display labels derived from status and due date. LabelOverdue is never stored.
const (
	LabelPaid    = "paid"
	LabelPending = "pending"
	LabelOverdue = "overdue"
)

// Invoice is a bill issued to a Client.
type Invoice struct {
	ID          string        `json:"id" bson:"_id"`
	ClientID    string        `json:"client_id" bson:"client_id"`
	Amount      float64       `json:"amount" bson:"amount"`
	Description string        `json:"description" bson:"description"`
	ProjectName string        `json:"project_name" bson:"project_name"`
	GeneratedAt time.Time     `json:"generated_at" bson:"generated_at"`
	Status      InvoiceStatus `json:"status" bson:"status"`
	DueDate     time.Time     `json:"due_date" bson:"due_date"`
}

// IsOverdue reports whether the invoice is unpaid and past its due date.
func (i Invoice) IsOverdue(now time.Time) bool {
	return i.Status == InvoicePending && i.DueDate.Before(now)
}

// Label returns the display label for the invoice at the given time.
func (i Invoice) Label(now time.Time) string {
	switch {
	case i.Status == InvoicePaid:
		return LabelPaid
	case i.IsOverdue(now):
		return LabelOverdue
	default:
		return LabelPending
	}
}

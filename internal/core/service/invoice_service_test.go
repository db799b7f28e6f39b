package service

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/ports"
)

func newInvoiceSvc(store ports.EntityStore) *invoiceService {
	svc := NewInvoiceService(store, zerolog.Nop()).(*invoiceService)
	svc.now = fixedClock
	return svc
}

func TestInvoiceService_ListLabels(t *testing.T) {
	store := demoStore()
	svc := newInvoiceSvc(store)

	views, err := svc.ListInvoices(ctx, superAdmin)
	mustNoErr(t, err)
	if len(views) != 2 {
		t.Fatalf("expected 2 invoices, got %d", len(views))
	}
	labels := map[string]string{}
	for _, v := range views {
		labels[v.ID] = v.Label
	}
	if labels["1"] != domain.LabelPending || labels["2"] != domain.LabelPaid {
		t.Errorf("unexpected labels: %v", labels)
	}

	svc.now = func() time.Time { return fixedNow.Add(45 * 24 * time.Hour) }
	views, err = svc.ListInvoices(ctx, techCorp)
	mustNoErr(t, err)
	if len(views) != 1 || views[0].Label != domain.LabelOverdue || views[0].ClientName != "Tech Corp Inc" {
		t.Fatalf("expected Tech Corp's invoice to be overdue, got %+v", views)
	}
}

func TestInvoiceService_UserAdminSeesNoInvoices(t *testing.T) {
	svc := newInvoiceSvc(demoStore())

	views, err := svc.ListInvoices(ctx, userAdmin)
	mustNoErr(t, err)
	if len(views) != 0 {
		t.Fatalf("expected none, got %d", len(views))
	}
}

func TestInvoiceService_Generate(t *testing.T) {
	store := demoStore()
	svc := newInvoiceSvc(store)
	due := fixedNow.Add(14 * 24 * time.Hour)

	inv, err := svc.GenerateInvoice(ctx, superAdmin, ports.GenerateInvoiceInput{
		ClientID: "c2", Amount: 4200, Description: "Sourcing", ProjectName: "Spring", DueDate: due,
	})
	mustNoErr(t, err)
	if inv.Status != domain.InvoicePending || !inv.GeneratedAt.Equal(fixedNow) || !inv.DueDate.Equal(due) {
		t.Errorf("unexpected invoice: %+v", inv)
	}

	_, err = svc.GenerateInvoice(ctx, superAdmin, ports.GenerateInvoiceInput{
		ClientID: "c2", Amount: 1, Description: "x", ProjectName: "y",
	})
	if !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields without due date, got %v", err)
	}

	_, err = svc.GenerateInvoice(ctx, userAdmin, ports.GenerateInvoiceInput{
		ClientID: "c2", Amount: 1, Description: "x", ProjectName: "y", DueDate: due,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestInvoiceService_Generate_InactiveClient(t *testing.T) {
	store := demoStore()
	mustNoErr(t, newClientSvc(store).SetClientActive(ctx, superAdmin, "c2", false, true))
	svc := newInvoiceSvc(store)

	_, err := svc.GenerateInvoice(ctx, superAdmin, ports.GenerateInvoiceInput{
		ClientID: "c2", Amount: 1, Description: "x", ProjectName: "y", DueDate: fixedNow,
	})
	if !errors.Is(err, domain.ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
}

func TestInvoiceService_SetStatus(t *testing.T) {
	store := demoStore()
	svc := newInvoiceSvc(store)

	mustNoErr(t, svc.SetInvoiceStatus(ctx, superAdmin, "1", domain.InvoicePaid))
	mustNoErr(t, svc.SetInvoiceStatus(ctx, superAdmin, "2", domain.InvoicePending))
	snap := store.Snapshot()
	if snap.Invoices[0].Status != domain.InvoicePaid || snap.Invoices[1].Status != domain.InvoicePending {
		t.Fatalf("unexpected statuses: %+v", snap.Invoices)
	}

	if err := svc.SetInvoiceStatus(ctx, superAdmin, "1", "void"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if err := svc.SetInvoiceStatus(ctx, techCorp, "1", domain.InvoicePending); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

package domain

import (
	"testing"
	"time"
)

func TestCandidateStatus_EveryOtherStatusReachableInOneStep(t *testing.T) {
	for _, from := range CandidateStatuses {
		for _, to := range CandidateStatuses {
			got := from.CanTransitionTo(to)
			want := from != to
			if got != want {
				t.Errorf("%s -> %s: expected %v, got %v", from, to, want, got)
			}
		}
	}
}

func TestCandidateStatus_UnknownIsInvalid(t *testing.T) {
	if CandidateStatus("hired").Valid() {
		t.Fatal("unknown status must not be valid")
	}
	if CandidatePending.CanTransitionTo("hired") {
		t.Fatal("transition to unknown status must be refused")
	}
}

func TestPositionStatus_Bidirectional(t *testing.T) {
	if !PositionOpen.CanTransitionTo(PositionClosed) || !PositionClosed.CanTransitionTo(PositionOpen) {
		t.Fatal("open and closed must be mutually reachable")
	}
	if PositionOpen.Toggled() != PositionClosed || PositionClosed.Toggled() != PositionOpen {
		t.Fatal("Toggled must flip the status")
	}
}

func TestInvoiceStatus_Bidirectional(t *testing.T) {
	if !InvoicePending.CanTransitionTo(InvoicePaid) || !InvoicePaid.CanTransitionTo(InvoicePending) {
		t.Fatal("pending and paid must be mutually reachable")
	}
	if InvoicePaid.CanTransitionTo("void") {
		t.Fatal("unknown invoice status accepted")
	}
}

func TestInvoice_Overdue(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name    string
		inv     Invoice
		overdue bool
		label   string
	}{
		{"pending past due", Invoice{Status: InvoicePending, DueDate: past}, true, LabelOverdue},
		{"paid past due", Invoice{Status: InvoicePaid, DueDate: past}, false, LabelPaid},
		{"pending not yet due", Invoice{Status: InvoicePending, DueDate: future}, false, LabelPending},
		{"due exactly now", Invoice{Status: InvoicePending, DueDate: now}, false, LabelPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.inv.IsOverdue(now); got != tt.overdue {
				t.Errorf("IsOverdue: expected %v, got %v", tt.overdue, got)
			}
			if got := tt.inv.Label(now); got != tt.label {
				t.Errorf("Label: expected %q, got %q", tt.label, got)
			}
		})
	}
}

func TestActor_ClientID(t *testing.T) {
	if got := ClientActor("c1").ClientID(); got != "c1" {
		t.Fatalf("expected c1, got %q", got)
	}
	if got := UserAdmin("u2").ClientID(); got != "" {
		t.Fatalf("staff actors carry no client id, got %q", got)
	}
}

func TestDataset_CloneIsIndependent(t *testing.T) {
	d := Dataset{Users: []User{{ID: "1", AssignedClients: []string{"a"}}}}
	c := d.Clone()
	c.Users[0].AssignedClients[0] = "b"
	c.Users[0].ID = "2"
	if d.Users[0].ID != "1" || d.Users[0].AssignedClients[0] != "a" {
		t.Fatal("clone shares memory with original")
	}
}

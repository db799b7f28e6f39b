package service

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/ports"
)

func newReportSvc(store ports.EntityStore) *reportService {
	svc := NewReportService(store, zerolog.Nop()).(*reportService)
	svc.now = fixedClock
	return svc
}

func TestReportService_SuperAdminSummary(t *testing.T) {
	svc := newReportSvc(demoStore())

	sum, err := svc.Summary(ctx, superAdmin)
	mustNoErr(t, err)
	if sum.Revenue.Total != 23000 || sum.Revenue.Paid != 8000 || sum.Revenue.Pending != 15000 {
		t.Errorf("unexpected revenue: %+v", sum.Revenue)
	}
	if sum.ActiveUserAdmins != 1 || sum.ActiveClients != 2 {
		t.Errorf("unexpected counters: admins=%d clients=%d", sum.ActiveUserAdmins, sum.ActiveClients)
	}
	if sum.Positions.Open != 2 || sum.Positions.Closed != 1 || sum.Candidates.Total != 3 {
		t.Errorf("unexpected counts: %+v %+v", sum.Positions, sum.Candidates)
	}
}

func TestReportService_ClientSummaryIsScoped(t *testing.T) {
	svc := newReportSvc(demoStore())

	sum, err := svc.Summary(ctx, digitalSol)
	mustNoErr(t, err)
	if sum.Revenue.Total != 8000 || sum.Candidates.Total != 0 || sum.Positions.Total != 1 {
		t.Errorf("unexpected scoped summary: %+v", sum)
	}
	if len(sum.Clients) != 1 || sum.Clients[0].ClientID != "c2" {
		t.Errorf("expected a single rollup for c2, got %+v", sum.Clients)
	}
}

func TestReportService_RejectionRipplesIntoSummary(t *testing.T) {
	store := demoStore()
	reports := newReportSvc(store)
	cands := newCandidateSvc(store, &stubNotifier{})

	mustNoErr(t, cands.SetCandidateStatus(ctx, userAdmin, "1", domain.CandidateRejected, ""))
	sum, err := reports.Summary(ctx, userAdmin)
	mustNoErr(t, err)
	if sum.Candidates.Rejected != 2 || sum.Candidates.Pending != 0 {
		t.Fatalf("unexpected candidate counts: %+v", sum.Candidates)
	}
}

func TestNotificationService_Recent(t *testing.T) {
	sink := &stubSink{items: []domain.Notification{{ID: "n1"}}}
	svc := NewNotificationService(sink, zerolog.Nop())

	out, err := svc.RecentNotifications(ctx, superAdmin, 0)
	mustNoErr(t, err)
	if len(out) != 1 || sink.limit != defaultNotificationLimit {
		t.Fatalf("unexpected result %+v with limit %d", out, sink.limit)
	}

	_, err = svc.RecentNotifications(ctx, superAdmin, 10_000)
	mustNoErr(t, err)
	if sink.limit != maxNotificationLimit {
		t.Errorf("expected limit clamped to %d, got %d", maxNotificationLimit, sink.limit)
	}

	if _, err := svc.RecentNotifications(ctx, userAdmin, 5); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	sink.err = errors.New("redis down")
	if _, err := svc.RecentNotifications(ctx, superAdmin, 5); err == nil {
		t.Fatal("expected sink error to propagate")
	}
}

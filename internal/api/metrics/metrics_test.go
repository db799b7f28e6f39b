package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/ports"
)

func TestObserveStore_SetsGauges(t *testing.T) {
	now := time.Now().UTC()
	d := domain.Dataset{
		Clients: []domain.Client{{ID: "c1"}},
		Positions: []domain.Position{
			{ID: "p1", ClientID: "c1", Status: domain.PositionOpen},
			{ID: "p2", ClientID: "gone", Status: domain.PositionOpen},
		},
		Candidates: []domain.Candidate{
			{ID: "a", PositionID: "p1", Status: domain.CandidateRejected},
			{ID: "b", PositionID: "p2", Status: domain.CandidateRejected},
		},
		Invoices: []domain.Invoice{
			{ID: "i1", ClientID: "c1", Amount: 100, Status: domain.InvoicePending, DueDate: now.Add(-time.Hour)},
			{ID: "i2", ClientID: "c1", Amount: 50, Status: domain.InvoicePaid},
		},
	}

	ObserveStore(ports.Change{Version: 3, Snapshot: d})

	if got := testutil.ToFloat64(PositionsGauge.WithLabelValues("open")); got != 1 {
		t.Errorf("open positions gauge: expected 1 (orphan excluded), got %v", got)
	}
	if got := testutil.ToFloat64(CandidatesGauge.WithLabelValues("rejected")); got != 1 {
		t.Errorf("rejected candidates gauge: expected 1, got %v", got)
	}
	if got := testutil.ToFloat64(RevenueGauge.WithLabelValues("overdue")); got != 100 {
		t.Errorf("overdue revenue gauge: expected 100, got %v", got)
	}
	if got := testutil.ToFloat64(StoreVersion); got != 3 {
		t.Errorf("store version gauge: expected 3, got %v", got)
	}
}

func TestMiddleware_RecordsRenderedStatus(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/v1/boom", func(echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, errors.New("nope"))
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/v1/boom", "418"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/boom", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", rec.Code)
	}
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/v1/boom", "418"))
	if after != before+1 {
		t.Fatalf("expected counter to increase by 1, got %v -> %v", before, after)
	}
}

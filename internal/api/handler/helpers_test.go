package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hirelane/ats/internal/api/middleware"
	"github.com/hirelane/ats/internal/core/domain"
)

var (
	superAdmin = domain.Actor{Role: domain.RoleSuperAdmin, ID: "1", Name: "Super Admin"}
	userAdmin  = domain.Actor{Role: domain.RoleUserAdmin, ID: "2", Name: "John Doe"}
	techCorp   = domain.Actor{Role: domain.RoleClient, ID: "c1", Name: "Tech Corp Inc"}
)

// newContext builds an echo context carrying actor, as the Auth middleware
// would. A zero actor leaves the context unauthenticated.
func newContext(method, target, body string, actor domain.Actor) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor.ID != "" {
		c.Set(middleware.ActorKey, actor)
	}
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func expectHTTPError(t *testing.T, err error, want int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	if he.Code != want {
		t.Fatalf("expected HTTP %d, got %d", want, he.Code)
	}
}


package handler

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/service"
	"github.com/hirelane/ats/internal/infrastructure/crypto"
	"github.com/hirelane/ats/internal/infrastructure/db/memory"
)

func newDirectoryHandler() (*DirectoryHandler, *memory.Store) {
	store := memory.NewStore(memory.DemoDataset(time.Now().UTC()))
	passwords := crypto.Plaintext{}
	return NewDirectoryHandler(
		service.NewUserService(store, passwords, zerolog.Nop()),
		service.NewClientService(store, passwords, zerolog.Nop()),
	), store
}

func TestDirectoryHandler_CreateUser(t *testing.T) {
	h, store := newDirectoryHandler()

	body := `{"username":"jane","password":"pw","name":"Jane Roe","email":"jane@ats.com"}`
	c, rec := newContext(http.MethodPost, "/v1/users", body, superAdmin)
	if err := h.CreateUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusCreated)

	var resp map[string]any
	decode(t, rec, &resp)
	if resp["role"] != "useradmin" || resp["active"] != true {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["password"]; leaked {
		t.Fatal("password must not be serialised")
	}
	if n := len(store.Snapshot().Users); n != 3 {
		t.Fatalf("expected 3 users, got %d", n)
	}
}

func TestDirectoryHandler_CreateUser_UsernameTaken(t *testing.T) {
	h, _ := newDirectoryHandler()

	body := `{"username":"techcorp","password":"pw","name":"Dup","email":"dup@ats.com"}`
	c, _ := newContext(http.MethodPost, "/v1/users", body, superAdmin)
	if err := h.CreateUser(c); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestDirectoryHandler_SetUserActive_RequiresField(t *testing.T) {
	h, _ := newDirectoryHandler()

	c, _ := newContext(http.MethodPut, "/v1/users/2/active", `{}`, superAdmin)
	c.SetParamNames("id")
	c.SetParamValues("2")
	if err := h.SetUserActive(c); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestDirectoryHandler_SetClientActive_OffboardNeedsConfirm(t *testing.T) {
	h, store := newDirectoryHandler()

	c, _ := newContext(http.MethodPut, "/v1/clients/c1/active", `{"active":false}`, superAdmin)
	c.SetParamNames("id")
	c.SetParamValues("c1")
	if err := h.SetClientActive(c); !errors.Is(err, domain.ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}

	c, rec := newContext(http.MethodPut, "/v1/clients/c1/active", `{"active":false,"confirm":true}`, superAdmin)
	c.SetParamNames("id")
	c.SetParamValues("c1")
	if err := h.SetClientActive(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusNoContent)
	if store.Snapshot().Clients[0].Active {
		t.Fatal("expected client c1 to be offboarded")
	}
}

func TestDirectoryHandler_ListUsers_ClientForbidden(t *testing.T) {
	h, _ := newDirectoryHandler()

	c, _ := newContext(http.MethodGet, "/v1/users", "", techCorp)
	if err := h.ListUsers(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

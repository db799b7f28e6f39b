package service

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/ports"
	"github.com/hirelane/ats/internal/infrastructure/crypto"
)

func newUserSvc(store ports.EntityStore) *userService {
	svc := NewUserService(store, crypto.Plaintext{}, zerolog.Nop()).(*userService)
	svc.now = fixedClock
	return svc
}

func newClientSvc(store ports.EntityStore) *clientService {
	svc := NewClientService(store, crypto.Plaintext{}, zerolog.Nop()).(*clientService)
	svc.now = fixedClock
	return svc
}

func TestUserService_CreateUserAdmin(t *testing.T) {
	store := demoStore()
	svc := newUserSvc(store)

	u, err := svc.CreateUserAdmin(ctx, superAdmin, ports.CreateUserAdminInput{
		Username: "jane.admin", Password: "pw", Name: "Jane", Email: "jane@ats.com",
	})
	mustNoErr(t, err)
	if u.Role != domain.RoleUserAdmin || !u.Active || u.CreatedBy != "1" || u.ID == "" {
		t.Errorf("unexpected user: %+v", u)
	}
	if got := len(store.Snapshot().Users); got != 3 {
		t.Errorf("expected 3 users, got %d", got)
	}
}

func TestUserService_CreateUserAdmin_MissingFields(t *testing.T) {
	store := demoStore()
	svc := newUserSvc(store)

	_, err := svc.CreateUserAdmin(ctx, superAdmin, ports.CreateUserAdminInput{Username: "x"})
	if !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if got := len(store.Snapshot().Users); got != 2 {
		t.Errorf("store must be unchanged, got %d users", got)
	}
}

func TestUserService_CreateUserAdmin_UsernameTakenAcrossClients(t *testing.T) {
	svc := newUserSvc(demoStore())

	_, err := svc.CreateUserAdmin(ctx, superAdmin, ports.CreateUserAdminInput{
		Username: "techcorp", Password: "pw", Name: "T", Email: "t@ats.com",
	})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserService_OnlySuperAdmin(t *testing.T) {
	svc := newUserSvc(demoStore())

	if _, err := svc.ListUserAdmins(ctx, userAdmin); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for useradmin list, got %v", err)
	}
	if err := svc.SetUserActive(ctx, techCorp, "2", false); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for client, got %v", err)
	}
}

func TestUserService_SetUserActive(t *testing.T) {
	store := demoStore()
	svc := newUserSvc(store)

	mustNoErr(t, svc.SetUserActive(ctx, superAdmin, "2", false))
	u, _ := store.Snapshot().FindUser("2")
	if u.Active {
		t.Fatal("expected user 2 to be inactive")
	}

	v := store.Version()
	mustNoErr(t, svc.SetUserActive(ctx, superAdmin, "2", false))
	if store.Version() != v {
		t.Error("repeating the same state must not write")
	}
}

func TestUserService_ReactivateActiveIsNoOp(t *testing.T) {
	store := demoStore()
	svc := newUserSvc(store)
	before := store.Snapshot()

	mustNoErr(t, svc.SetUserActive(ctx, superAdmin, "2", true))
	mustNoErr(t, svc.SetUserActive(ctx, superAdmin, "missing", false))
	mustNoErr(t, svc.SetUserActive(ctx, superAdmin, "1", false))

	if store.Version() != 0 {
		t.Fatalf("expected no writes, version is %d", store.Version())
	}
	if len(store.Snapshot().Users) != len(before.Users) {
		t.Fatal("user collection changed")
	}
}

func TestClientService_OnboardClient(t *testing.T) {
	store := demoStore()
	svc := newClientSvc(store)

	c, err := svc.OnboardClient(ctx, superAdmin, ports.OnboardClientInput{
		Name: "Acme", Email: "hr@acme.com", ContactPerson: "Wile", Username: "acme", Password: "pw",
	})
	mustNoErr(t, err)
	if !c.Active || !c.OnboardedAt.Equal(fixedNow) {
		t.Errorf("unexpected client: %+v", c)
	}

	_, err = svc.OnboardClient(ctx, superAdmin, ports.OnboardClientInput{
		Name: "Acme 2", Email: "x@acme.com", ContactPerson: "Road", Username: "acme", Password: "pw",
	})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if got := len(store.Snapshot().Clients); got != 3 {
		t.Errorf("expected 3 clients, got %d", got)
	}
}

func TestClientService_OnboardClient_PhoneOptional(t *testing.T) {
	svc := newClientSvc(demoStore())

	_, err := svc.OnboardClient(ctx, superAdmin, ports.OnboardClientInput{
		Name: "Acme", Email: "hr@acme.com", Username: "acme", Password: "pw",
	})
	if !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields without contact person, got %v", err)
	}
}

func TestClientService_Offboarding(t *testing.T) {
	store := demoStore()
	svc := newClientSvc(store)

	err := svc.SetClientActive(ctx, superAdmin, "c1", false, false)
	if !errors.Is(err, domain.ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}

	mustNoErr(t, svc.SetClientActive(ctx, superAdmin, "c1", false, true))
	c, _ := store.Snapshot().FindClient("c1")
	if c.Active {
		t.Fatal("expected c1 to be inactive")
	}

	mustNoErr(t, svc.SetClientActive(ctx, superAdmin, "c1", true, false))
	c, _ = store.Snapshot().FindClient("c1")
	if !c.Active {
		t.Fatal("expected c1 to be reactivated")
	}
}

func TestClientService_ReactivateActiveIsNoOp(t *testing.T) {
	store := demoStore()
	svc := newClientSvc(store)

	mustNoErr(t, svc.SetClientActive(ctx, superAdmin, "c2", true, false))
	if store.Version() != 0 {
		t.Fatal("reactivating an active client must not write")
	}
}

func TestClientService_ListClients_Scoped(t *testing.T) {
	svc := newClientSvc(demoStore())

	all, err := svc.ListClients(ctx, userAdmin)
	mustNoErr(t, err)
	if len(all) != 2 {
		t.Errorf("useradmin should see every client, got %d", len(all))
	}

	own, err := svc.ListClients(ctx, digitalSol)
	mustNoErr(t, err)
	if len(own) != 1 || own[0].ID != "c2" {
		t.Errorf("client should only see itself, got %+v", own)
	}
}

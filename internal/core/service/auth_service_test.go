package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/ports"
	"github.com/hirelane/ats/internal/infrastructure/crypto"
	"github.com/hirelane/ats/internal/infrastructure/db/memory"
)

func newAuthSvc(store ports.EntityStore, m ports.PasswordMatcher) *AuthService {
	svc := NewAuthService(store, m, "secret", time.Hour, zerolog.Nop())
	svc.now = fixedClock
	return svc
}

func TestAuthService_Authenticate_Client(t *testing.T) {
	svc := newAuthSvc(demoStore(), crypto.Plaintext{})

	actor, err := svc.Authenticate(ctx, "techcorp", "client123", domain.RoleClient)
	mustNoErr(t, err)
	if actor.Role != domain.RoleClient || actor.ID != "c1" {
		t.Fatalf("expected client actor c1, got %+v", actor)
	}
	if actor.ClientID() != "c1" || actor.Name != "Tech Corp Inc" {
		t.Errorf("unexpected actor fields: %+v", actor)
	}
}

func TestAuthService_Authenticate_StaffRoleMustMatch(t *testing.T) {
	svc := newAuthSvc(demoStore(), crypto.Plaintext{})

	if _, err := svc.Authenticate(ctx, "superadmin", "admin123", domain.RoleSuperAdmin); err != nil {
		t.Fatalf("superadmin login failed: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "superadmin", "admin123", domain.RoleUserAdmin); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong role, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "john.admin", "admin123", domain.RoleClient); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("staff must not authenticate as client, got %v", err)
	}
}

func TestAuthService_Authenticate_Rejections(t *testing.T) {
	svc := newAuthSvc(demoStore(), crypto.Plaintext{})

	cases := []struct {
		name, user, pass string
		role             domain.Role
	}{
		{"wrong password", "techcorp", "nope", domain.RoleClient},
		{"unknown user", "ghost", "client123", domain.RoleClient},
		{"empty password", "techcorp", "", domain.RoleClient},
		{"unknown role", "techcorp", "client123", domain.Role("guest")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Authenticate(ctx, tc.user, tc.pass, tc.role); !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthService_Authenticate_InactiveClientRejected(t *testing.T) {
	store := demoStore()
	clients := NewClientService(store, crypto.Plaintext{}, zerolog.Nop())
	mustNoErr(t, clients.SetClientActive(ctx, superAdmin, "c1", false, true))

	svc := newAuthSvc(store, crypto.Plaintext{})
	if _, err := svc.Authenticate(ctx, "techcorp", "client123", domain.RoleClient); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected inactive client to be rejected, got %v", err)
	}
}

func TestAuthService_Active(t *testing.T) {
	store := demoStore()
	svc := newAuthSvc(store, crypto.Plaintext{})
	client := domain.ClientActor("c1")
	staff := domain.UserAdmin("2")

	if !svc.Active(ctx, client) || !svc.Active(ctx, staff) || !svc.Active(ctx, superAdmin) {
		t.Fatal("seeded accounts should be active")
	}
	if svc.Active(ctx, domain.ClientActor("missing")) {
		t.Error("unknown client reported active")
	}
	if svc.Active(ctx, domain.SuperAdmin("2")) {
		t.Error("role mismatch reported active")
	}

	mustNoErr(t, NewClientService(store, crypto.Plaintext{}, zerolog.Nop()).SetClientActive(ctx, superAdmin, "c1", false, true))
	mustNoErr(t, NewUserService(store, crypto.Plaintext{}, zerolog.Nop()).SetUserActive(ctx, superAdmin, "2", false))

	if svc.Active(ctx, client) {
		t.Error("offboarded client still active")
	}
	if svc.Active(ctx, staff) {
		t.Error("deactivated user admin still active")
	}
}

func TestAuthService_Authenticate_FirstMatchWins(t *testing.T) {
	seed := memory.DemoDataset(fixedNow)
	seed.Clients = append(seed.Clients, domain.Client{ID: "c9", Name: "Shadow", Username: "techcorp", Password: "client123", Active: true})
	svc := newAuthSvc(memory.NewStore(seed), crypto.Plaintext{})

	actor, err := svc.Authenticate(ctx, "techcorp", "client123", domain.RoleClient)
	mustNoErr(t, err)
	if actor.ID != "c1" {
		t.Fatalf("expected the first client in insertion order, got %s", actor.ID)
	}
}

func TestAuthService_Login_IssuesToken(t *testing.T) {
	svc := newAuthSvc(demoStore(), crypto.Plaintext{})
	svc.now = time.Now

	res, err := svc.Login(ctx, "techcorp", "client123", domain.RoleClient)
	mustNoErr(t, err)
	if res.Token == "" {
		t.Fatal("expected token")
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(res.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !tkn.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["sub"] != "c1" || claims["role"] != "client" || claims["client_id"] != "c1" {
		t.Errorf("unexpected claims: %v", claims)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc := newAuthSvc(demoStore(), crypto.Plaintext{})
	if _, err := svc.Login(ctx, "techcorp", "bad", domain.RoleClient); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestHashCredentials_Bcrypt(t *testing.T) {
	m := crypto.Bcrypt{Cost: 4}
	seed := memory.DemoDataset(fixedNow)
	mustNoErr(t, HashCredentials(&seed, m))
	if seed.Users[0].Password == "admin123" {
		t.Fatal("expected user password to be hashed")
	}

	svc := newAuthSvc(memory.NewStore(seed), m)
	if _, err := svc.Authenticate(ctx, "digitalsol", "client123", domain.RoleClient); err != nil {
		t.Fatalf("hashed login failed: %v", err)
	}
}

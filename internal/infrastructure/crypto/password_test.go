package crypto

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNewMatcher(t *testing.T) {
	for _, mode := range []string{"", "plaintext", "BCRYPT"} {
		if _, err := NewMatcher(mode); err != nil {
			t.Errorf("mode %q: unexpected error %v", mode, err)
		}
	}
	if _, err := NewMatcher("md5"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestPlaintext(t *testing.T) {
	m := Plaintext{}
	stored, _ := m.Hash("admin123")
	if stored != "admin123" {
		t.Fatalf("plaintext hash must be identity, got %q", stored)
	}
	if !m.Match(stored, "admin123") {
		t.Error("expected match")
	}
	if m.Match(stored, "admin124") || m.Match(stored, "") {
		t.Error("unexpected match")
	}
}

func TestBcrypt(t *testing.T) {
	m := Bcrypt{Cost: bcrypt.MinCost}
	stored, err := m.Hash("client123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if stored == "client123" {
		t.Fatal("bcrypt must not store plaintext")
	}
	if !m.Match(stored, "client123") {
		t.Error("expected match")
	}
	if m.Match(stored, "client12") {
		t.Error("unexpected match")
	}
	if m.Match("client123", "client123") {
		t.Error("a plaintext stored value must not match in bcrypt mode")
	}
}

// Package crypto provides the password matchers selected by PASSWORD_MODE.
package crypto

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/hirelane/ats/internal/core/ports"
)

const (
	ModePlaintext = "plaintext"
	ModeBcrypt    = "bcrypt"
)

// NewMatcher returns the matcher for mode. An empty mode selects plaintext.
func NewMatcher(mode string) (ports.PasswordMatcher, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModePlaintext:
		return Plaintext{}, nil
	case ModeBcrypt:
		return Bcrypt{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("crypto: unknown password mode %q", mode)
	}
}

// Plaintext stores passwords as given and compares them verbatim.
// TODO: drop once the demo accounts are provisioned with hashed passwords.
type Plaintext struct{}

func (Plaintext) Hash(password string) (string, error) { return password, nil }

func (Plaintext) Match(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

// Bcrypt stores bcrypt hashes.
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (Bcrypt) Match(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

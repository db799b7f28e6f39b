// Package service implements the use cases behind every dashboard action.
// Each mutation runs inside a single EntityStore.Write so that the
// read-check-replace sequence is atomic.
package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/ports"
)

var validate = validator.New()

// validateInput runs the struct's validate tags and reports missing fields
// as domain.ErrMissingFields.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return fmt.Errorf("%w: %s", domain.ErrMissingFields, strings.Join(fields, ", "))
}

// newID returns a fresh, time-ordered identifier.
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func utcNow() time.Time { return time.Now().UTC() }

// txDataset reads every collection visible through tx.
func txDataset(tx ports.StoreTx) domain.Dataset {
	return domain.Dataset{
		Users:        tx.Users(),
		Clients:      tx.Clients(),
		Positions:    tx.Positions(),
		Candidates:   tx.Candidates(),
		Invoices:     tx.Invoices(),
		ChatMessages: tx.ChatMessages(),
	}
}

// usernameTaken reports whether any staff user or client already logs in
// with username.
func usernameTaken(d domain.Dataset, username string) bool {
	for _, u := range d.Users {
		if u.Username == username {
			return true
		}
	}
	for _, c := range d.Clients {
		if c.Username == username {
			return true
		}
	}
	return false
}

func forbidden(op string) error {
	return fmt.Errorf("%s: %w", op, domain.ErrForbidden)
}

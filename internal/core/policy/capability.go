package policy

import "github.com/hirelane/ats/internal/core/domain"

// Operation names an action that is subject to authorization.
type Operation string

const (
	OpListUsers          Operation = "users.list"
	OpCreateUserAdmin    Operation = "users.create"
	OpSetUserActive      Operation = "users.set_active"
	OpListClients        Operation = "clients.list"
	OpOnboardClient      Operation = "clients.onboard"
	OpSetClientActive    Operation = "clients.set_active"
	OpListPositions      Operation = "positions.list"
	OpCreatePosition     Operation = "positions.create"
	OpUpdatePosition     Operation = "positions.update"
	OpSetPositionStatus  Operation = "positions.set_status"
	OpDeletePosition     Operation = "positions.delete"
	OpListCandidates     Operation = "candidates.list"
	OpUploadCandidate    Operation = "candidates.upload"
	OpSetCandidateStatus Operation = "candidates.set_status"
	OpAnnotateCandidate  Operation = "candidates.annotate"
	OpResendRejection    Operation = "candidates.resend_rejection"
	OpListInvoices       Operation = "invoices.list"
	OpGenerateInvoice    Operation = "invoices.generate"
	OpSetInvoiceStatus   Operation = "invoices.set_status"
	OpChat               Operation = "chat"
	OpViewReports        Operation = "reports.view"
	OpListNotifications  Operation = "notifications.list"
)

var (
	staff      = []domain.Role{domain.RoleSuperAdmin, domain.RoleUserAdmin}
	superOnly  = []domain.Role{domain.RoleSuperAdmin}
	everyone   = []domain.Role{domain.RoleSuperAdmin, domain.RoleUserAdmin, domain.RoleClient}
	clientOnly = []domain.Role{domain.RoleClient}
)

// grants maps each operation to the roles allowed to attempt it. Entity
// level checks (ownership) are applied on top by the Can* helpers.
var grants = map[Operation][]domain.Role{
	OpListUsers:          superOnly,
	OpCreateUserAdmin:    superOnly,
	OpSetUserActive:      superOnly,
	OpListClients:        everyone,
	OpOnboardClient:      superOnly,
	OpSetClientActive:    superOnly,
	OpListPositions:      everyone,
	OpCreatePosition:     everyone,
	OpUpdatePosition:     everyone,
	OpSetPositionStatus:  everyone,
	OpDeletePosition:     clientOnly,
	OpListCandidates:     everyone,
	OpUploadCandidate:    staff,
	OpSetCandidateStatus: everyone,
	OpAnnotateCandidate:  everyone,
	OpResendRejection:    staff,
	OpListInvoices:       everyone,
	OpGenerateInvoice:    superOnly,
	OpSetInvoiceStatus:   superOnly,
	OpChat:               everyone,
	OpViewReports:        everyone,
	OpListNotifications:  superOnly,
}

// Can reports whether actor's role may perform op at all.
func Can(actor domain.Actor, op Operation) bool {
	if actor.ID == "" {
		return false
	}
	for _, r := range grants[op] {
		if r == actor.Role {
			return true
		}
	}
	return false
}

// CanWritePosition reports whether actor may run op against position p.
// Clients only ever act on their own positions.
func CanWritePosition(actor domain.Actor, op Operation, p domain.Position) bool {
	if !Can(actor, op) {
		return false
	}
	if actor.IsClient() {
		return p.ClientID == actor.ID
	}
	return true
}

// CanWriteCandidate reports whether actor may run op against a candidate
// attached to position p.
func CanWriteCandidate(actor domain.Actor, op Operation, p domain.Position) bool {
	return CanWritePosition(actor, op, p)
}

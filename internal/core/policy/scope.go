// Package policy centralises who may see and change what.
//
// Scope derives the subset of a dataset visible to an actor; the capability
// functions answer whether an actor may run an operation, optionally against
// a specific entity.
package policy

import "github.com/hirelane/ats/internal/core/domain"

// Scope returns the part of d visible to actor. Orphans (a position whose
// client is gone, a candidate whose position is gone, an invoice whose
// client is gone) are never visible. An actor with no matching scope gets
// empty collections.
//
// Users are only returned to superadmins. Chat messages are the ones the
// actor sent or received.
func Scope(actor domain.Actor, d domain.Dataset) domain.Dataset {
	var out domain.Dataset

	switch actor.Role {
	case domain.RoleSuperAdmin:
		out.Users = domain.CloneUsers(d.Users)
		out.Clients = append(out.Clients, d.Clients...)
		out.Positions = attachedPositions(d.Clients, d.Positions, "")
		out.Invoices = attachedInvoices(d.Clients, d.Invoices, "")
	case domain.RoleUserAdmin:
		// AssignedClients is not consulted: user admins see every client.
		out.Clients = append(out.Clients, d.Clients...)
		out.Positions = attachedPositions(d.Clients, d.Positions, "")
	case domain.RoleClient:
		if c, ok := d.FindClient(actor.ID); ok {
			out.Clients = []domain.Client{c}
			out.Positions = attachedPositions(d.Clients, d.Positions, c.ID)
			out.Invoices = attachedInvoices(d.Clients, d.Invoices, c.ID)
		}
	default:
		return out
	}

	out.Candidates = attachedCandidates(out.Positions, d.Candidates)
	for _, m := range d.ChatMessages {
		if m.Involves(actor.ID) {
			out.ChatMessages = append(out.ChatMessages, m)
		}
	}
	return out
}

func clientSet(clients []domain.Client) map[string]struct{} {
	set := make(map[string]struct{}, len(clients))
	for _, c := range clients {
		set[c.ID] = struct{}{}
	}
	return set
}

// attachedPositions keeps positions whose client exists, restricted to
// onlyClient when it is non-empty.
func attachedPositions(clients []domain.Client, positions []domain.Position, onlyClient string) []domain.Position {
	known := clientSet(clients)
	var out []domain.Position
	for _, p := range positions {
		if _, ok := known[p.ClientID]; !ok {
			continue
		}
		if onlyClient != "" && p.ClientID != onlyClient {
			continue
		}
		out = append(out, p)
	}
	return out
}

func attachedInvoices(clients []domain.Client, invoices []domain.Invoice, onlyClient string) []domain.Invoice {
	known := clientSet(clients)
	var out []domain.Invoice
	for _, inv := range invoices {
		if _, ok := known[inv.ClientID]; !ok {
			continue
		}
		if onlyClient != "" && inv.ClientID != onlyClient {
			continue
		}
		out = append(out, inv)
	}
	return out
}

// attachedCandidates keeps candidates whose position is among positions.
func attachedCandidates(positions []domain.Position, candidates []domain.Candidate) []domain.Candidate {
	visible := make(map[string]struct{}, len(positions))
	for _, p := range positions {
		visible[p.ID] = struct{}{}
	}
	var out []domain.Candidate
	for _, c := range candidates {
		if _, ok := visible[c.PositionID]; ok {
			out = append(out, c)
		}
	}
	return out
}

// VisiblePosition looks up a position within the actor's scope.
func VisiblePosition(actor domain.Actor, d domain.Dataset, id string) (domain.Position, bool) {
	p, ok := d.FindPosition(id)
	if !ok {
		return domain.Position{}, false
	}
	if _, ok := d.FindClient(p.ClientID); !ok {
		return domain.Position{}, false
	}
	switch actor.Role {
	case domain.RoleSuperAdmin, domain.RoleUserAdmin:
		return p, true
	case domain.RoleClient:
		return p, p.ClientID == actor.ID
	}
	return domain.Position{}, false
}

// VisibleCandidate looks up a candidate within the actor's scope, together
// with the position it belongs to.
func VisibleCandidate(actor domain.Actor, d domain.Dataset, id string) (domain.Candidate, domain.Position, bool) {
	for _, c := range d.Candidates {
		if c.ID != id {
			continue
		}
		p, ok := VisiblePosition(actor, d, c.PositionID)
		if !ok {
			return domain.Candidate{}, domain.Position{}, false
		}
		return c, p, true
	}
	return domain.Candidate{}, domain.Position{}, false
}

// VisibleInvoice looks up an invoice within the actor's scope.
func VisibleInvoice(actor domain.Actor, d domain.Dataset, id string) (domain.Invoice, bool) {
	for _, inv := range d.Invoices {
		if inv.ID != id {
			continue
		}
		if _, ok := d.FindClient(inv.ClientID); !ok {
			return domain.Invoice{}, false
		}
		switch actor.Role {
		case domain.RoleSuperAdmin:
			return inv, true
		case domain.RoleClient:
			return inv, inv.ClientID == actor.ID
		}
		return domain.Invoice{}, false
	}
	return domain.Invoice{}, false
}

// VisibleClient looks up a client within the actor's scope.
func VisibleClient(actor domain.Actor, d domain.Dataset, id string) (domain.Client, bool) {
	c, ok := d.FindClient(id)
	if !ok {
		return domain.Client{}, false
	}
	switch actor.Role {
	case domain.RoleSuperAdmin, domain.RoleUserAdmin:
		return c, true
	case domain.RoleClient:
		return c, c.ID == actor.ID
	}
	return domain.Client{}, false
}

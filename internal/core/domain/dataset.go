package domain

import "slices"

// Dataset is the full set of collections held by the entity store.
type Dataset struct {
	Users        []User
	Clients      []Client
	Positions    []Position
	Candidates   []Candidate
	Invoices     []Invoice
	ChatMessages []ChatMessage
}

// Clone returns a copy that shares no slices with d.
func (d Dataset) Clone() Dataset {
	return Dataset{
		Users:        CloneUsers(d.Users),
		Clients:      slices.Clone(d.Clients),
		Positions:    slices.Clone(d.Positions),
		Candidates:   slices.Clone(d.Candidates),
		Invoices:     slices.Clone(d.Invoices),
		ChatMessages: slices.Clone(d.ChatMessages),
	}
}

// CloneUsers copies users including their AssignedClients slices.
func CloneUsers(users []User) []User {
	if users == nil {
		return nil
	}
	out := make([]User, len(users))
	for i, u := range users {
		u.AssignedClients = slices.Clone(u.AssignedClients)
		out[i] = u
	}
	return out
}

// FindClient returns the client with the given id.
func (d Dataset) FindClient(id string) (Client, bool) {
	for _, c := range d.Clients {
		if c.ID == id {
			return c, true
		}
	}
	return Client{}, false
}

// FindPosition returns the position with the given id.
func (d Dataset) FindPosition(id string) (Position, bool) {
	for _, p := range d.Positions {
		if p.ID == id {
			return p, true
		}
	}
	return Position{}, false
}

// FindUser returns the user with the given id.
func (d Dataset) FindUser(id string) (User, bool) {
	for _, u := range d.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

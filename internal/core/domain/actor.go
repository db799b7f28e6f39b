package domain

// Actor is the authenticated principal driving an operation. Role is the
// variant tag: ID refers to a User for superadmin/useradmin and to a Client
// for the client role.
type Actor struct {
	Role  Role   `json:"role"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// SuperAdmin, UserAdmin and ClientActor build actors of each variant.
func SuperAdmin(id string) Actor { return Actor{Role: RoleSuperAdmin, ID: id} }

func UserAdmin(id string) Actor { return Actor{Role: RoleUserAdmin, ID: id} }

func ClientActor(clientID string) Actor { return Actor{Role: RoleClient, ID: clientID} }

// ActorFromUser builds the actor for an authenticated staff user.
func ActorFromUser(u User) Actor {
	return Actor{Role: u.Role, ID: u.ID, Name: u.Name, Email: u.Email}
}

// ActorFromClient builds the actor for an authenticated client login.
func ActorFromClient(c Client) Actor {
	return Actor{Role: RoleClient, ID: c.ID, Name: c.Name, Email: c.Email}
}

// ClientID returns the owning client id for client actors and "" otherwise.
func (a Actor) ClientID() string {
	if a.Role == RoleClient {
		return a.ID
	}
	return ""
}

func (a Actor) IsSuperAdmin() bool { return a.Role == RoleSuperAdmin }
func (a Actor) IsUserAdmin() bool  { return a.Role == RoleUserAdmin }
func (a Actor) IsClient() bool     { return a.Role == RoleClient }

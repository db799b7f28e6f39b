package domain

import "time"

// Role identifies which dashboard an actor belongs to.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleUserAdmin  Role = "useradmin"
	RoleClient     Role = "client"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleUserAdmin, RoleClient:
		return true
	}
	return false
}

// User is a staff account (superadmin or useradmin).
//
// Password holds whatever the configured PasswordMatcher stores: the
// plaintext value in demo mode, a bcrypt hash otherwise.
type User struct {
	ID        string    `json:"id" bson:"_id"`
	Username  string    `json:"username" bson:"username"`
	Password  string    `json:"-" bson:"password"`
	Role      Role      `json:"role" bson:"role"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	CreatedBy string    `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	Active    bool      `json:"active" bson:"active"`
	// AssignedClients is carried for compatibility; scoping does not read it.
	AssignedClients []string `json:"assigned_clients,omitempty" bson:"assigned_clients,omitempty"`
}

package domain

import "time"

// Role is fixed at registration and never changes afterwards.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

// Roles lists every known role.
func Roles() []Role { return []Role{RoleEmployee, RoleAdmin} }

func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// Identity is a person who can authenticate. Identities are never deleted;
// Active=false blocks login and token resolution instead.
type Identity struct {
	ID           string
	Email        string
	PasswordHash string // argon2id PHC string
	FirstName    string
	LastName     string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the public view of an identity, safe to return to clients.
type Profile struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Role      Role
	Active    bool
	CreatedAt time.Time
}

func (i Identity) Profile() Profile {
	return Profile{
		ID:        i.ID,
		Email:     i.Email,
		FirstName: i.FirstName,
		LastName:  i.LastName,
		Role:      i.Role,
		Active:    i.Active,
		CreatedAt: i.CreatedAt,
	}
}

// Caller is the authenticated requester of an operation, resolved from a
// bearer token against the current identity record.
type Caller struct {
	ID    string
	Email string
	Role  Role
}

func (i Identity) Caller() Caller {
	return Caller{ID: i.ID, Email: i.Email, Role: i.Role}
}

// AccessToken is a signed bearer token handed to a client after register or
// login.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

package entity

// Role is the authorization role carried by a user and their session.
type Role string

const (
	RoleAuthor Role = "author"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAuthor || r == RoleAdmin
}

func (r Role) String() string { return string(r) }

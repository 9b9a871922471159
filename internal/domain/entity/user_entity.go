package entity

import (
	"time"
)

// DefaultAuthorImage is used for users and article authors without an avatar.
const DefaultAuthorImage = "/images/authors/default.jpg"

// User is an account allowed to sign in to the admin area.
// Passwords are stored as bcrypt hashes in Password field
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Image     string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AsAuthor returns the snapshot embedded into articles written by u.
func (u *User) AsAuthor() Author {
	img := u.Image
	if img == "" {
		img = DefaultAuthorImage
	}
	return Author{Name: u.Name, Image: img}
}

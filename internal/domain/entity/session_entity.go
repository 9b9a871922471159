package entity

import "time"

// Session is the server-side record behind a pair of auth tokens.
// A token is honoured only while its SID matches the stored one.
type Session struct {
	SID       string
	UserID    string
	Name      string
	Email     string
	Image     string
	Role      Role
	CreatedAt time.Time
}

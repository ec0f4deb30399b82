package domain

import "time"

// User is the domain entity for a guest. The access code is both the
// username and the password, matched byte-for-byte.
type User struct {
	ID         int64
	AccessCode string
	Name       string
	IsAdmin    bool
	CreatedAt  time.Time
}

package model

import "time"

// Account is a registered user identity. PasswordHash holds a bcrypt hash,
// never a raw password.
type Account struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Package models defines the persistent entities of the server.
package models

import "time"

// User is an account holder. PasswordHash is an Argon2id PHC digest; the
// plaintext never reaches this struct. TOTPSecret is set only for users who
// completed 2FA enrollment.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email,omitempty"`
	TOTPSecret   string    `json:"-"`
	TOTPEnabled  bool      `json:"totpEnabled"`
	CreatedAt    time.Time `json:"-"`
}

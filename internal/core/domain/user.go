package domain

import "time"

// User models a registered student account.
//
// PasswordHash is excluded from JSON serialization and is only populated on
// the verification read path; it must never reach a client.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

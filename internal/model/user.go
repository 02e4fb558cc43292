package model

import "time"

// User is an identity record. The upload workflow never mutates users;
// they exist as the owning side of the prescription foreign key and are
// managed through administrative tooling only.
type User struct {
	ID           int64     `json:"user_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	UserDetails  bool      `json:"user_details"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

package model

import "time"

// User represents a registered account. IsAdmin is fixed at creation;
// no endpoint changes it afterwards.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserDetails holds the optional shipping details for a user. A user has at
// most one row; saving overwrites the previous one.
type UserDetails struct {
	UserID    int    `json:"-"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

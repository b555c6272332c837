// Package models holds the persistent records of the studio.
package models

import "time"

// User is a registered account. Password holds the bcrypt hash.
type User struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Password  string
	Admin     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

package models

import "time"

// User is the credential record persisted for each account. The password
// hash never leaves the process: it is excluded from JSON and only ever
// inspected through the auth package.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

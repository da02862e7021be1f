package models

import (
	"time"
)

// User is an administrator account from the 'users' table
type User struct {
	ID           int64      `json:"id" db:"id" example:"1"`
	Username     string     `json:"username" db:"username" example:"admin1"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         RoleType   `json:"role" db:"role" example:"admin"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

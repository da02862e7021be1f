package dto

import "time"

// LoginRequest represents admin login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=50" example:"admin1"`
	Password string `json:"password" binding:"required,max=128" example:"admin123"`
}

// UserResponse is the public view of an admin account
type UserResponse struct {
	ID          int64      `json:"id" example:"1"`
	Username    string     `json:"username" example:"admin1"`
	Role        string     `json:"role" example:"admin"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// LoginResponse carries the signed token and the user's public fields
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type" example:"Bearer"`
	ExpiresIn int          `json:"expires_in" example:"604800"`
	User      UserResponse `json:"user"`
}

package auth

import "github.com/google/uuid"

// User is an account that can sign in to the dashboard. Password holds the bcrypt hash.
type User struct {
	ID       uuid.UUID
	Name     string
	Email    string
	Password string
}

// Credentials is what the sign-in form and the token endpoint accept.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

package entity

import (
	"github.com/google/uuid"
)

// db model
type User struct {
	Id           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    string    `json:"createdAt" db:"created_at"`
}

// service input model, raw registration data
type RegisterInput struct {
	Name     string // given
	Email    string // given
	Password string // given, hashed by the service before it reaches the repo
}

// repo input model
type CreateUserInput struct {
	Name         string // given
	Email        string // given, lowercased by the service
	PasswordHash string // bcrypt hash, never the raw password
	// Id UUID sets automatically
	// CreatedAt sets automatically
}

// controller model; safe to show to other users, carries no credentials
type UserOutputModel struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

package entity

import (
	"github.com/google/uuid"
)

// db model; owner columns come from the join against users
type Gig struct {
	Id          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Budget      float64   `json:"budget" db:"budget"`
	Status      string    `json:"status" db:"status"`
	OwnerId     uuid.UUID `json:"ownerId" db:"owner_id"`
	OwnerName   string    `json:"ownerName" db:"owner_name"`
	OwnerEmail  string    `json:"ownerEmail" db:"owner_email"`
	CreatedAt   string    `json:"createdAt" db:"created_at"`
	UpdatedAt   string    `json:"updatedAt" db:"updated_at"`
}

// service + repo input model
type CreateGigInput struct {
	Title       string  // given
	Description string  // given
	Budget      float64 // given
	OwnerId     string  // taken from the session, not the body
	// Status should be set: "open"
	// Id UUID sets automatically
	// CreatedAt sets automatically
}

// listing filter; Status defaults to "open", Search is a free-text term
type GigFilter struct {
	Status string
	Search string
}

// controller model
type GigOutputModel struct {
	Id          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Budget      float64          `json:"budget"`
	Status      string           `json:"status"`
	Owner       *UserOutputModel `json:"owner"`
	CreatedAt   string           `json:"createdAt"`
	UpdatedAt   string           `json:"updatedAt"`
}

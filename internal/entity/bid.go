package entity

import (
	"github.com/google/uuid"
)

// db model; bidder and gig columns come from joins
type Bid struct {
	Id          uuid.UUID `json:"id" db:"id"`
	GigId       uuid.UUID `json:"gigId" db:"gig_id"`
	GigTitle    string    `json:"gigTitle" db:"gig_title"`
	GigStatus   string    `json:"gigStatus" db:"gig_status"`
	BidderId    uuid.UUID `json:"bidderId" db:"bidder_id"`
	BidderName  string    `json:"bidderName" db:"bidder_name"`
	BidderEmail string    `json:"bidderEmail" db:"bidder_email"`
	Message     string    `json:"message" db:"message"`
	Price       float64   `json:"price" db:"price"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   string    `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateBidInput struct {
	GigId    string  // given
	BidderId string  // taken from the session, not the body
	Message  string  // given
	Price    float64 // given
	// Status should be set: "pending"
	// Id UUID sets automatically
	// CreatedAt sets automatically
}

// lightweight gig reference embedded in bid responses
type GigRefModel struct {
	Id     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// controller model
type BidOutputModel struct {
	Id        string           `json:"id"`
	Gig       *GigRefModel     `json:"gig"`
	Bidder    *UserOutputModel `json:"bidder"`
	Message   string           `json:"message"`
	Price     float64          `json:"price"`
	Status    string           `json:"status"`
	CreatedAt string           `json:"createdAt"`
}

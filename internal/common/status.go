package common

// Gig lifecycle. A gig only ever moves open -> assigned, via hiring a bid.
const (
	GigOpen     = "open"
	GigAssigned = "assigned"
)

// Bid lifecycle. A bid starts pending; hiring one bid on a gig marks it
// hired and every other pending bid on that gig rejected.
const (
	BidPending  = "pending"
	BidHired    = "hired"
	BidRejected = "rejected"
)

package service

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrGigNotFound  = errors.New("gig not found")
	ErrBidNotFound  = errors.New("bid not found")

	ErrEmailAlreadyTaken  = errors.New("user with given email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrGigNotAcceptingBids = errors.New("gig is no longer accepting bids")
	ErrOwnGigBid           = errors.New("gig owner can't bid on their own gig")
	ErrDuplicateBid        = errors.New("bid for this gig already submitted by this user")

	ErrUserIsNotGigOwner  = errors.New("user doesn't own the gig")
	ErrGigAlreadyAssigned = errors.New("gig has already been assigned")
)

package repo_errors

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")

	// ErrGigClosed reports that the conditional gig status update matched no
	// open gig row: the gig was already assigned by the time the write ran.
	ErrGigClosed = errors.New("gig is not open")
)

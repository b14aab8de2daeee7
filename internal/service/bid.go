package service

import (
	"context"
	"errors"
	"gigflow/internal/common"
	"gigflow/internal/entity"
	"gigflow/internal/notify"
	"gigflow/internal/repo"
	"gigflow/internal/repo/repo_errors"
)

type BidService struct {
	bidRepo   repo.Bid
	gigRepo   repo.Gig
	publisher notify.Publisher
}

func NewBidService(repos *repo.Repositories, publisher notify.Publisher) *BidService {
	if publisher == nil {
		publisher = notify.NoopPublisher{}
	}

	return &BidService{
		bidRepo:   repos.Bid,
		gigRepo:   repos.Gig,
		publisher: publisher,
	}
}

// CreateBid checks bid eligibility against a fresh read of the gig right
// before the insert. The duplicate-bid rule is additionally enforced by the
// storage unique index, so of two concurrent submissions from the same
// bidder exactly one can win.
func (s *BidService) CreateBid(ctx context.Context, input *entity.CreateBidInput) (*entity.BidOutputModel, error) {
	gig, err := s.gigRepo.GetGigById(ctx, input.GigId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrGigNotFound
		}

		return nil, err
	}

	if gig.Status != common.GigOpen {
		return nil, ErrGigNotAcceptingBids
	}

	if gig.OwnerId.String() == input.BidderId {
		return nil, ErrOwnGigBid
	}

	id, err := s.bidRepo.CreateBid(ctx, input)
	if err != nil {
		if errors.Is(err, repo_errors.ErrAlreadyExists) {
			return nil, ErrDuplicateBid
		}

		return nil, err
	}

	bid, err := s.bidRepo.GetBidById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	result := mapBid(bid)
	s.publisher.Publish(gig.OwnerId.String(), notify.NewEvent(notify.EventBidReceived, map[string]any{
		"gigId":    gig.Id.String(),
		"gigTitle": gig.Title,
		"bidId":    result.Id,
		"price":    result.Price,
	}))

	return result, nil
}

// Bids are owner-private: bidders don't see competing bids. Returns one page
// of bids plus the total number of bids on the gig.
func (s *BidService) GetGigBids(ctx context.Context, gigId string, callerId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, int, error) {
	gig, err := s.gigRepo.GetGigById(ctx, gigId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, 0, ErrGigNotFound
		}

		return nil, 0, err
	}

	if gig.OwnerId.String() != callerId {
		return nil, 0, ErrUserIsNotGigOwner
	}

	bids, err := s.bidRepo.GetGigBids(ctx, gigId, pg)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.bidRepo.CountGigBids(ctx, gigId)
	if err != nil {
		return nil, 0, err
	}

	return mapBids(bids), total, nil
}

// HireBid closes the gig and resolves its bids. The precondition checks run
// on a fresh read, but the authoritative gate is the conditional update
// inside the repo transaction: a concurrent hire that loses the race gets the
// already-assigned error, never a second hired bid.
func (s *BidService) HireBid(ctx context.Context, bidId string, callerId string) (*entity.BidOutputModel, error) {
	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, err
	}

	gig, err := s.gigRepo.GetGigById(ctx, bid.GigId.String())
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrGigNotFound
		}

		return nil, err
	}

	if gig.OwnerId.String() != callerId {
		return nil, ErrUserIsNotGigOwner
	}

	if gig.Status != common.GigOpen {
		return nil, ErrGigAlreadyAssigned
	}

	rejectedBidders, err := s.bidRepo.HireBid(ctx, gig.Id, bid.Id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrGigClosed) {
			return nil, ErrGigAlreadyAssigned
		}

		return nil, err
	}

	bid, err = s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		return nil, err
	}

	result := mapBid(bid)

	s.publisher.Publish(result.Bidder.Id, notify.NewEvent(notify.EventBidHired, map[string]any{
		"gigId":    gig.Id.String(),
		"gigTitle": gig.Title,
		"bidId":    result.Id,
	}))
	for _, bidderId := range rejectedBidders {
		s.publisher.Publish(bidderId.String(), notify.NewEvent(notify.EventBidRejected, map[string]any{
			"gigId":    gig.Id.String(),
			"gigTitle": gig.Title,
		}))
	}

	return result, nil
}

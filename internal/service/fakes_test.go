package service

import (
	"context"
	"gigflow/internal/common"
	"gigflow/internal/entity"
	"gigflow/internal/notify"
	"gigflow/internal/repo/repo_errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the pgdb repositories. It mirrors
// their contracts: sentinel errors, the (gig, bidder) uniqueness rule and the
// conditional gig update inside HireBid.
type fakeStore struct {
	users    map[uuid.UUID]*entity.User
	gigs     map[uuid.UUID]*entity.Gig
	bids     map[uuid.UUID]*entity.Bid
	bidOrder []uuid.UUID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: make(map[uuid.UUID]*entity.User),
		gigs:  make(map[uuid.UUID]*entity.Gig),
		bids:  make(map[uuid.UUID]*entity.Bid),
	}
}

func (f *fakeStore) addUser(name string, email string) uuid.UUID {
	id := uuid.New()
	f.users[id] = &entity.User{
		Id:        id,
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().Format(time.RFC3339),
	}

	return id
}

func (f *fakeStore) CreateUser(ctx context.Context, input *entity.CreateUserInput) (uuid.UUID, error) {
	for _, u := range f.users {
		if u.Email == input.Email {
			return uuid.Nil, repo_errors.ErrAlreadyExists
		}
	}

	id := uuid.New()
	f.users[id] = &entity.User{
		Id:           id,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    time.Now().Format(time.RFC3339),
	}

	return id, nil
}

func (f *fakeStore) GetUserById(ctx context.Context, id string) (*entity.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	user, ok := f.users[uid]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	copied := *user

	return &copied, nil
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u

			return &copied, nil
		}
	}

	return nil, repo_errors.ErrNotFound
}

func (f *fakeStore) CreateGig(ctx context.Context, input *entity.CreateGigInput) (uuid.UUID, error) {
	ownerId, err := uuid.Parse(input.OwnerId)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	f.gigs[id] = &entity.Gig{
		Id:          id,
		Title:       input.Title,
		Description: input.Description,
		Budget:      input.Budget,
		Status:      common.GigOpen,
		OwnerId:     ownerId,
		CreatedAt:   time.Now().Format(time.RFC3339),
		UpdatedAt:   time.Now().Format(time.RFC3339),
	}

	return id, nil
}

func (f *fakeStore) GetGigById(ctx context.Context, id string) (*entity.Gig, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	gig, ok := f.gigs[uid]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	copied := *gig
	if owner, ok := f.users[gig.OwnerId]; ok {
		copied.OwnerName = owner.Name
		copied.OwnerEmail = owner.Email
	}

	return &copied, nil
}

func (f *fakeStore) matchesGigFilter(gig *entity.Gig, filter *entity.GigFilter) bool {
	if gig.Status != filter.Status {
		return false
	}
	if filter.Search != "" &&
		!strings.Contains(gig.Title, filter.Search) &&
		!strings.Contains(gig.Description, filter.Search) {
		return false
	}

	return true
}

func (f *fakeStore) GetGigs(ctx context.Context, filter *entity.GigFilter, pg *entity.PaginationInput) ([]entity.Gig, error) {
	gigs := make([]entity.Gig, 0)
	for _, gig := range f.gigs {
		if !f.matchesGigFilter(gig, filter) {
			continue
		}

		gigs = append(gigs, *gig)
	}

	return paginate(gigs, pg), nil
}

func (f *fakeStore) CountGigs(ctx context.Context, filter *entity.GigFilter) (int, error) {
	count := 0
	for _, gig := range f.gigs {
		if f.matchesGigFilter(gig, filter) {
			count++
		}
	}

	return count, nil
}

func (f *fakeStore) CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error) {
	gigId, err := uuid.Parse(input.GigId)
	if err != nil {
		return uuid.Nil, repo_errors.ErrNotFound
	}

	bidderId, err := uuid.Parse(input.BidderId)
	if err != nil {
		return uuid.Nil, err
	}

	for _, b := range f.bids {
		if b.GigId == gigId && b.BidderId == bidderId {
			return uuid.Nil, repo_errors.ErrAlreadyExists
		}
	}

	id := uuid.New()
	f.bids[id] = &entity.Bid{
		Id:        id,
		GigId:     gigId,
		BidderId:  bidderId,
		Message:   input.Message,
		Price:     input.Price,
		Status:    common.BidPending,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	f.bidOrder = append(f.bidOrder, id)

	return id, nil
}

func (f *fakeStore) GetBidById(ctx context.Context, id string) (*entity.Bid, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	bid, ok := f.bids[uid]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	copied := *bid
	if gig, ok := f.gigs[bid.GigId]; ok {
		copied.GigTitle = gig.Title
		copied.GigStatus = gig.Status
	}
	if bidder, ok := f.users[bid.BidderId]; ok {
		copied.BidderName = bidder.Name
		copied.BidderEmail = bidder.Email
	}

	return &copied, nil
}

func (f *fakeStore) GetGigBids(ctx context.Context, gigId string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	uid, err := uuid.Parse(gigId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	bids := make([]entity.Bid, 0)
	for i := len(f.bidOrder) - 1; i >= 0; i-- {
		bid := f.bids[f.bidOrder[i]]
		if bid.GigId != uid {
			continue
		}

		copied, _ := f.GetBidById(ctx, bid.Id.String())
		bids = append(bids, *copied)
	}

	return paginate(bids, pg), nil
}

func (f *fakeStore) CountGigBids(ctx context.Context, gigId string) (int, error) {
	uid, err := uuid.Parse(gigId)
	if err != nil {
		return 0, repo_errors.ErrNotFound
	}

	count := 0
	for _, bid := range f.bids {
		if bid.GigId == uid {
			count++
		}
	}

	return count, nil
}

func paginate[T any](items []T, pg *entity.PaginationInput) []T {
	start := pg.Offset
	if start > len(items) {
		start = len(items)
	}
	end := start + pg.Limit
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}

func (f *fakeStore) HireBid(ctx context.Context, gigId uuid.UUID, bidId uuid.UUID) ([]uuid.UUID, error) {
	gig, ok := f.gigs[gigId]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}
	if gig.Status != common.GigOpen {
		return nil, repo_errors.ErrGigClosed
	}

	gig.Status = common.GigAssigned
	rejected := make([]uuid.UUID, 0)
	for _, bid := range f.bids {
		if bid.GigId != gigId {
			continue
		}
		if bid.Id == bidId {
			bid.Status = common.BidHired

			continue
		}
		if bid.Status == common.BidPending {
			bid.Status = common.BidRejected
			rejected = append(rejected, bid.BidderId)
		}
	}

	return rejected, nil
}

type publishedEvent struct {
	userId string
	event  notify.Event
}

// capturePublisher records every publish for assertions.
type capturePublisher struct {
	events []publishedEvent
}

func (p *capturePublisher) Publish(userId string, event notify.Event) {
	p.events = append(p.events, publishedEvent{userId: userId, event: event})
}

func (p *capturePublisher) eventsFor(userId string) []notify.Event {
	var out []notify.Event
	for _, e := range p.events {
		if e.userId == userId {
			out = append(out, e.event)
		}
	}

	return out
}

package service

import (
	"context"
	"gigflow/internal/common"
	"gigflow/internal/entity"
	"gigflow/internal/notify"
	"gigflow/internal/repo/repo_errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBidTestEnv() (*fakeStore, *capturePublisher, *BidService) {
	store := newFakeStore()
	publisher := &capturePublisher{}
	svc := &BidService{bidRepo: store, gigRepo: store, publisher: publisher}

	return store, publisher, svc
}

func createTestGig(t *testing.T, store *fakeStore, ownerId uuid.UUID) *entity.Gig {
	t.Helper()

	id, err := store.CreateGig(context.Background(), &entity.CreateGigInput{
		Title:       "Build API",
		Description: "REST API for a marketplace",
		Budget:      500,
		OwnerId:     ownerId.String(),
	})
	require.NoError(t, err)

	return store.gigs[id]
}

func TestCreateBid(t *testing.T) {
	store, publisher, svc := newBidTestEnv()
	owner := store.addUser("Alice", "alice@example.com")
	bidder := store.addUser("Bob", "bob@example.com")
	gig := createTestGig(t, store, owner)

	bid, err := svc.CreateBid(context.Background(), &entity.CreateBidInput{
		GigId:    gig.Id.String(),
		BidderId: bidder.String(),
		Message:  "I can do this",
		Price:    450,
	})
	require.NoError(t, err)

	assert.Equal(t, common.BidPending, bid.Status)
	assert.Equal(t, "Bob", bid.Bidder.Name)
	assert.Equal(t, gig.Title, bid.Gig.Title)

	events := publisher.eventsFor(owner.String())
	require.Len(t, events, 1)
	assert.Equal(t, notify.EventBidReceived, events[0].Type)
}

func TestCreateBidGigNotFound(t *testing.T) {
	store, _, svc := newBidTestEnv()
	bidder := store.addUser("Bob", "bob@example.com")

	_, err := svc.CreateBid(context.Background(), &entity.CreateBidInput{
		GigId:    uuid.NewString(),
		BidderId: bidder.String(),
		Message:  "hello",
		Price:    10,
	})

	assert.ErrorIs(t, err, ErrGigNotFound)
	assert.Empty(t, store.bids)
}

func TestCreateBidOnClosedGig(t *testing.T) {
	store, _, svc := newBidTestEnv()
	owner := store.addUser("Alice", "alice@example.com")
	bidder := store.addUser("Bob", "bob@example.com")
	gig := createTestGig(t, store, owner)
	gig.Status = common.GigAssigned

	_, err := svc.CreateBid(context.Background(), &entity.CreateBidInput{
		GigId:    gig.Id.String(),
		BidderId: bidder.String(),
		Message:  "too late",
		Price:    100,
	})

	assert.ErrorIs(t, err, ErrGigNotAcceptingBids)
	assert.Empty(t, store.bids)
}

func TestCreateBidOnOwnGig(t *testing.T) {
	store, _, svc := newBidTestEnv()
	owner := store.addUser("Alice", "alice@example.com")
	gig := createTestGig(t, store, owner)

	_, err := svc.CreateBid(context.Background(), &entity.CreateBidInput{
		GigId:    gig.Id.String(),
		BidderId: owner.String(),
		Message:  "hire me",
		Price:    1,
	})

	assert.ErrorIs(t, err, ErrOwnGigBid)
	assert.Empty(t, store.bids)
}

func TestCreateBidDuplicate(t *testing.T) {
	store, _, svc := newBidTestEnv()
	owner := store.addUser("Alice", "alice@example.com")
	bidder := store.addUser("Bob", "bob@example.com")
	gig := createTestGig(t, store, owner)

	input := &entity.CreateBidInput{
		GigId:    gig.Id.String(),
		BidderId: bidder.String(),
		Message:  "first",
		Price:    100,
	}
	_, err := svc.CreateBid(context.Background(), input)
	require.NoError(t, err)

	input.Message = "second"
	_, err = svc.CreateBid(context.Background(), input)

	assert.ErrorIs(t, err, ErrDuplicateBid)
	assert.Len(t, store.bids, 1)
}

func TestGetGigBidsOwnerOnly(t *testing.T) {
	store, _, svc := newBidTestEnv()
	owner := store.addUser("Alice", "alice@example.com")
	bidder := store.addUser("Bob", "bob@example.com")
	stranger := store.addUser("Carol", "carol@example.com")
	gig := createTestGig(t, store, owner)

	_, err := svc.CreateBid(context.Background(), &entity.CreateBidInput{
		GigId:    gig.Id.String(),
		BidderId: bidder.String(),
		Message:  "pick me",
		Price:    300,
	})
	require.NoError(t, err)

	pg := entity.NewPaginationInput(20, 0)

	_, _, err = svc.GetGigBids(context.Background(), gig.Id.String(), stranger.String(), pg)
	assert.ErrorIs(t, err, ErrUserIsNotGigOwner)

	_, _, err = svc.GetGigBids(context.Background(), gig.Id.String(), bidder.String(), pg)
	assert.ErrorIs(t, err, ErrUserIsNotGigOwner)

	bids, total, err := svc.GetGigBids(context.Background(), gig.Id.String(), owner.String(), pg)
	require.NoError(t, err)
	assert.Len(t, bids, 1)
	assert.Equal(t, 1, total)
}

func TestGetGigBidsGigNotFound(t *testing.T) {
	store, _, svc := newBidTestEnv()
	caller := store.addUser("Alice", "alice@example.com")

	_, _, err := svc.GetGigBids(context.Background(), uuid.NewString(), caller.String(), entity.NewPaginationInput(20, 0))

	assert.ErrorIs(t, err, ErrGigNotFound)
}

func TestGetGigBidsTotalSpansPages(t *testing.T) {
	store, _, svc := newBidTestEnv()
	owner := store.addUser("Alice", "alice@example.com")
	gig := createTestGig(t, store, owner)

	for _, name := range []string{"Bob", "Carol", "Dave"} {
		bidder := store.addUser(name, strings.ToLower(name)+"@example.com")
		_, err := svc.CreateBid(context.Background(), &entity.CreateBidInput{
			GigId: gig.Id.String(), BidderId: bidder.String(), Message: "pick me", Price: 100,
		})
		require.NoError(t, err)
	}

	page, total, err := svc.GetGigBids(context.Background(), gig.Id.String(), owner.String(), entity.NewPaginationInput(2, 0))
	require.NoError(t, err)

	assert.Len(t, page, 2)
	assert.Equal(t, 3, total)
}

func TestHireBid(t *testing.T) {
	store, publisher, svc := newBidTestEnv()
	owner := store.addUser("Alice", "alice@example.com")
	winner := store.addUser("Bob", "bob@example.com")
	loser := store.addUser("Carol", "carol@example.com")
	gig := createTestGig(t, store, owner)

	hired, err := svc.CreateBid(context.Background(), &entity.CreateBidInput{
		GigId: gig.Id.String(), BidderId: winner.String(), Message: "I can do this", Price: 450,
	})
	require.NoError(t, err)
	_, err = svc.CreateBid(context.Background(), &entity.CreateBidInput{
		GigId: gig.Id.String(), BidderId: loser.String(), Message: "me too", Price: 400,
	})
	require.NoError(t, err)

	result, err := svc.HireBid(context.Background(), hired.Id, owner.String())
	require.NoError(t, err)

	assert.Equal(t, common.BidHired, result.Status)
	assert.Equal(t, common.GigAssigned, result.Gig.Status)
	assert.Equal(t, common.GigAssigned, store.gigs[gig.Id].Status)

	for _, bid := range store.bids {
		if bid.BidderId == winner {
			assert.Equal(t, common.BidHired, bid.Status)
		} else {
			assert.Equal(t, common.BidRejected, bid.Status)
		}
	}

	hiredEvents := publisher.eventsFor(winner.String())
	require.Len(t, hiredEvents, 1)
	assert.Equal(t, notify.EventBidHired, hiredEvents[0].Type)

	rejectedEvents := publisher.eventsFor(loser.String())
	require.Len(t, rejectedEvents, 1)
	assert.Equal(t, notify.EventBidRejected, rejectedEvents[0].Type)
}

func TestHireBidNotReenterable(t *testing.T) {
	store, _, svc := newBidTestEnv()
	owner := store.addUser("Alice", "alice@example.com")
	winner := store.addUser("Bob", "bob@example.com")
	loser := store.addUser("Carol", "carol@example.com")
	gig := createTestGig(t, store, owner)

	first, err := svc.CreateBid(context.Background(), &entity.CreateBidInput{
		GigId: gig.Id.String(), BidderId: winner.String(), Message: "one", Price: 450,
	})
	require.NoError(t, err)
	second, err := svc.CreateBid(context.Background(), &entity.CreateBidInput{
		GigId: gig.Id.String(), BidderId: loser.String(), Message: "two", Price: 400,
	})
	require.NoError(t, err)

	_, err = svc.HireBid(context.Background(), first.Id, owner.String())
	require.NoError(t, err)

	_, err = svc.HireBid(context.Background(), second.Id, owner.String())
	assert.ErrorIs(t, err, ErrGigAlreadyAssigned)

	// no further state change: first bid stays hired, second stays rejected
	firstId, _ := uuid.Parse(first.Id)
	secondId, _ := uuid.Parse(second.Id)
	assert.Equal(t, common.BidHired, store.bids[firstId].Status)
	assert.Equal(t, common.BidRejected, store.bids[secondId].Status)
}

func TestHireBidOwnerOnly(t *testing.T) {
	store, _, svc := newBidTestEnv()
	owner := store.addUser("Alice", "alice@example.com")
	bidder := store.addUser("Bob", "bob@example.com")
	gig := createTestGig(t, store, owner)

	bid, err := svc.CreateBid(context.Background(), &entity.CreateBidInput{
		GigId: gig.Id.String(), BidderId: bidder.String(), Message: "pick me", Price: 100,
	})
	require.NoError(t, err)

	_, err = svc.HireBid(context.Background(), bid.Id, bidder.String())
	assert.ErrorIs(t, err, ErrUserIsNotGigOwner)
	assert.Equal(t, common.GigOpen, store.gigs[gig.Id].Status)
}

func TestHireBidBidNotFound(t *testing.T) {
	store, _, svc := newBidTestEnv()
	caller := store.addUser("Alice", "alice@example.com")

	_, err := svc.HireBid(context.Background(), uuid.NewString(), caller.String())
	assert.ErrorIs(t, err, ErrBidNotFound)
}

// raceStore simulates losing the conditional gig update to a concurrent hire
// that committed between the service's precondition read and the write.
type raceStore struct {
	*fakeStore
}

func (r *raceStore) HireBid(ctx context.Context, gigId uuid.UUID, bidId uuid.UUID) ([]uuid.UUID, error) {
	return nil, repo_errors.ErrGigClosed
}

func TestHireBidLosesRace(t *testing.T) {
	store := newFakeStore()
	svc := &BidService{bidRepo: &raceStore{store}, gigRepo: store, publisher: &capturePublisher{}}
	owner := store.addUser("Alice", "alice@example.com")
	bidder := store.addUser("Bob", "bob@example.com")
	gig := createTestGig(t, store, owner)

	id, err := store.CreateBid(context.Background(), &entity.CreateBidInput{
		GigId: gig.Id.String(), BidderId: bidder.String(), Message: "pick me", Price: 100,
	})
	require.NoError(t, err)

	_, err = svc.HireBid(context.Background(), id.String(), owner.String())
	assert.ErrorIs(t, err, ErrGigAlreadyAssigned)
}

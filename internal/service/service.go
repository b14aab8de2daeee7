package service

import (
	"context"
	"gigflow/internal/entity"
	"gigflow/internal/notify"
	"gigflow/internal/repo"
	"gigflow/pkg/token"
)

type Diagnostics interface {
	Ping() error
}

type Auth interface {
	Register(ctx context.Context, input *entity.RegisterInput) (*entity.UserOutputModel, string, error)
	Login(ctx context.Context, email string, password string) (*entity.UserOutputModel, string, error)
	GetUserById(ctx context.Context, userId string) (*entity.UserOutputModel, error)
}

type Gig interface {
	CreateGig(ctx context.Context, input *entity.CreateGigInput) (*entity.GigOutputModel, error)
	GetGigById(ctx context.Context, gigId string) (*entity.GigOutputModel, error)
	GetGigs(ctx context.Context, filter *entity.GigFilter, pg *entity.PaginationInput) ([]entity.GigOutputModel, int, error)
}

type Bid interface {
	CreateBid(ctx context.Context, input *entity.CreateBidInput) (*entity.BidOutputModel, error)
	GetGigBids(ctx context.Context, gigId string, callerId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, int, error)
	HireBid(ctx context.Context, bidId string, callerId string) (*entity.BidOutputModel, error)
}

type Services struct {
	Diagnostics Diagnostics
	Auth        Auth
	Gig         Gig
	Bid         Bid
}

func NewServices(repos *repo.Repositories, tokens *token.Manager, publisher notify.Publisher) *Services {
	return &Services{
		Diagnostics: NewDiagnosticsService(repos),
		Auth:        NewAuthService(repos, tokens),
		Gig:         NewGigService(repos),
		Bid:         NewBidService(repos, publisher),
	}
}

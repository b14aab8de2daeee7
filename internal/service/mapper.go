package service

import (
	"gigflow/internal/entity"
)

func mapUser(u *entity.User) *entity.UserOutputModel {
	return &entity.UserOutputModel{
		Id:    u.Id.String(),
		Name:  u.Name,
		Email: u.Email,
	}
}

func mapGig(g *entity.Gig) *entity.GigOutputModel {
	return &entity.GigOutputModel{
		Id:          g.Id.String(),
		Title:       g.Title,
		Description: g.Description,
		Budget:      g.Budget,
		Status:      g.Status,
		Owner: &entity.UserOutputModel{
			Id:    g.OwnerId.String(),
			Name:  g.OwnerName,
			Email: g.OwnerEmail,
		},
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func mapGigs(gigs []entity.Gig) []entity.GigOutputModel {
	s := make([]entity.GigOutputModel, 0)
	for _, gig := range gigs {
		s = append(s, *mapGig(&gig))
	}

	return s
}

func mapBid(b *entity.Bid) *entity.BidOutputModel {
	return &entity.BidOutputModel{
		Id: b.Id.String(),
		Gig: &entity.GigRefModel{
			Id:     b.GigId.String(),
			Title:  b.GigTitle,
			Status: b.GigStatus,
		},
		Bidder: &entity.UserOutputModel{
			Id:    b.BidderId.String(),
			Name:  b.BidderName,
			Email: b.BidderEmail,
		},
		Message:   b.Message,
		Price:     b.Price,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
	}
}

func mapBids(bids []entity.Bid) []entity.BidOutputModel {
	s := make([]entity.BidOutputModel, 0)
	for _, bid := range bids {
		s = append(s, *mapBid(&bid))
	}

	return s
}

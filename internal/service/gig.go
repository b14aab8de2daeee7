package service

import (
	"context"
	"errors"
	"gigflow/internal/entity"
	"gigflow/internal/repo"
	"gigflow/internal/repo/repo_errors"
)

type GigService struct {
	gigRepo repo.Gig
}

func NewGigService(repos *repo.Repositories) *GigService {
	return &GigService{
		gigRepo: repos.Gig,
	}
}

func (s *GigService) CreateGig(ctx context.Context, input *entity.CreateGigInput) (*entity.GigOutputModel, error) {
	id, err := s.gigRepo.CreateGig(ctx, input)
	if err != nil {
		return nil, err
	}

	gig, err := s.gigRepo.GetGigById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapGig(gig), nil
}

func (s *GigService) GetGigById(ctx context.Context, gigId string) (*entity.GigOutputModel, error) {
	gig, err := s.gigRepo.GetGigById(ctx, gigId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrGigNotFound
		}

		return nil, err
	}

	return mapGig(gig), nil
}

// GetGigs returns one page of gigs plus the total number of matches, so
// callers can report the full result size alongside the page.
func (s *GigService) GetGigs(ctx context.Context, filter *entity.GigFilter, pg *entity.PaginationInput) ([]entity.GigOutputModel, int, error) {
	gigs, err := s.gigRepo.GetGigs(ctx, filter, pg)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.gigRepo.CountGigs(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return mapGigs(gigs), total, nil
}

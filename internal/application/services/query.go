package services

import (
	"context"
	"errors"

	"github.com/DanielPopoola/donation-gateway/internal/application"
	"github.com/DanielPopoola/donation-gateway/internal/domain"
)

type QueryService struct {
	repo application.DonationRepository
}

func NewQueryService(
	repo application.DonationRepository,
) *QueryService {
	return &QueryService{
		repo: repo,
	}
}

func (s *QueryService) GetStatus(ctx context.Context, donationRef string) (*domain.Donation, error) {
	donation, err := s.repo.FindByRef(ctx, donationRef)
	if err != nil {
		if errors.Is(err, domain.ErrDonationNotFound) {
			return nil, application.NewNotFoundError(err)
		}
		return nil, application.NewInternalError(err)
	}
	return donation, nil
}

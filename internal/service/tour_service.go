package service

import (
	"context"
	"fmt"

	"github.com/TheoInCodeLand/casalinga-tours/internal/domain"
	"github.com/TheoInCodeLand/casalinga-tours/internal/platform/geo"
	"github.com/TheoInCodeLand/casalinga-tours/internal/repo/postgres"
	"github.com/TheoInCodeLand/casalinga-tours/pkg/logger"
)

type TourService interface {
	ListAvailable(ctx context.Context, limit int) ([]domain.Tour, error)
	GetAvailable(ctx context.Context, id int64) (*domain.Tour, error)
	ListAll(ctx context.Context) ([]domain.Tour, error)
	Get(ctx context.Context, id int64) (*domain.Tour, error)
	Create(ctx context.Context, in *domain.TourInput) (*domain.Tour, error)
	Update(ctx context.Context, id int64, in *domain.TourInput) (*domain.Tour, error)
	Delete(ctx context.Context, id int64) error
}

type tourService struct {
	tourRepo postgres.TourRepository
	geocoder *geo.Geocoder
}

func NewTourService(tourRepo postgres.TourRepository, geocoder *geo.Geocoder) TourService {
	return &tourService{
		tourRepo: tourRepo,
		geocoder: geocoder,
	}
}

func (s *tourService) ListAvailable(ctx context.Context, limit int) ([]domain.Tour, error) {
	return s.tourRepo.ListAvailable(ctx, limit)
}

func (s *tourService) GetAvailable(ctx context.Context, id int64) (*domain.Tour, error) {
	return s.tourRepo.GetAvailableByID(ctx, id)
}

func (s *tourService) ListAll(ctx context.Context) ([]domain.Tour, error) {
	return s.tourRepo.ListAll(ctx)
}

func (s *tourService) Get(ctx context.Context, id int64) (*domain.Tour, error) {
	return s.tourRepo.GetByID(ctx, id)
}

func (s *tourService) Create(ctx context.Context, in *domain.TourInput) (*domain.Tour, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.resolveLocation(ctx, in)

	tour, err := s.tourRepo.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create tour: %w", err)
	}
	return tour, nil
}

func (s *tourService) Update(ctx context.Context, id int64, in *domain.TourInput) (*domain.Tour, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.resolveLocation(ctx, in)

	tour, err := s.tourRepo.Update(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("failed to update tour: %w", err)
	}
	return tour, nil
}

func (s *tourService) Delete(ctx context.Context, id int64) error {
	return s.tourRepo.Delete(ctx, id)
}

// resolveLocation geocodes the tour address when one is given. A failed
// lookup leaves the coordinates empty; the tour is still saved.
func (s *tourService) resolveLocation(ctx context.Context, in *domain.TourInput) {
	if in.Address == "" || in.Latitude != nil {
		return
	}

	result := s.geocoder.Geocode(ctx, in.Address)
	if !result.OK {
		logger.WarnContext(ctx, "Geocoding failed for tour address",
			"address", in.Address, "reason", result.Err)
		return
	}

	in.Latitude = &result.Latitude
	in.Longitude = &result.Longitude
	in.Address = result.FormattedAddress
}

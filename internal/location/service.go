// File: internal/location/service.go
package location

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for location business logic.
type Service interface {
	Create(ctx context.Context, req CreateLocationRequest) (*Location, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Location, error)
	ListAll(ctx context.Context) ([]Location, error)
	ListByCity(ctx context.Context, city string) ([]Location, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateLocationRequest) (*Location, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new location service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger.Named("location-service")}
}

func (s *service) Create(ctx context.Context, req CreateLocationRequest) (*Location, error) {
	loc := &Location{
		City:     NormalizeCity(req.City),
		District: strings.TrimSpace(req.District),
		ImageURL: req.ImageURL,
	}
	if err := s.repo.Create(ctx, loc); err != nil {
		return nil, err
	}
	s.logger.Info("Location created",
		zap.String("locationID", loc.ID.String()),
		zap.String("city", loc.City),
		zap.String("district", loc.District),
	)
	return loc, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Location, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListAll(ctx context.Context) ([]Location, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) ListByCity(ctx context.Context, city string) ([]Location, error) {
	return s.repo.FindByCity(ctx, city)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateLocationRequest) (*Location, error) {
	loc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.City != nil {
		loc.City = NormalizeCity(*req.City)
	}
	if req.District != nil {
		loc.District = strings.TrimSpace(*req.District)
	}
	if req.ImageURL != nil {
		loc.ImageURL = req.ImageURL
	}

	if err := s.repo.Update(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// File: internal/listing/service.go
package listing

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dreamhome_backend/internal/category"
	"dreamhome_backend/internal/common"
	"dreamhome_backend/internal/location"
)

// Service defines the interface for listing business logic.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateListingRequest) (*Listing, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	Search(ctx context.Context, query FilterQuery) ([]Listing, *common.Pagination, error)
	MyListings(ctx context.Context, userID uuid.UUID) ([]Listing, error)
	Update(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID, req UpdateListingRequest) (*Listing, error)
	Delete(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) error
	CityCounts(ctx context.Context) ([]CityCount, error)
}

type service struct {
	repo       Repository
	categories category.Repository
	locations  location.Repository
	logger     *zap.Logger
}

// NewService creates a new listing service.
func NewService(repo Repository, categories category.Repository, locations location.Repository, logger *zap.Logger) Service {
	return &service{
		repo:       repo,
		categories: categories,
		locations:  locations,
		logger:     logger.Named("listing-service"),
	}
}

// buildImages turns an ordered URL slice into image records. The first
// URL becomes the primary image.
func buildImages(urls []string) []ListingImage {
	images := make([]ListingImage, 0, len(urls))
	for i, url := range urls {
		images = append(images, ListingImage{
			URL:       url,
			SortOrder: i,
			IsPrimary: i == 0,
		})
	}
	return images
}

func (s *service) validateReferences(ctx context.Context, categoryID, locationID *uuid.UUID) error {
	if categoryID != nil && *categoryID != uuid.Nil {
		if _, err := s.categories.FindByID(ctx, *categoryID); err != nil {
			return common.ErrBadRequest.WithDetails("Referenced category does not exist.")
		}
	}
	if locationID != nil && *locationID != uuid.Nil {
		if _, err := s.locations.FindByID(ctx, *locationID); err != nil {
			return common.ErrNotFound.WithDetails("Referenced location does not exist.")
		}
	}
	return nil
}

// Create publishes a new listing for the authenticated user. Any
// authenticated user may create listings, regardless of role.
func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateListingRequest) (*Listing, error) {
	if err := s.validateReferences(ctx, &req.CategoryID, req.LocationID); err != nil {
		return nil, err
	}

	l := &Listing{
		UserID:      userID,
		CategoryID:  &req.CategoryID,
		LocationID:  req.LocationID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Price:       req.Price,
		Area:        req.Area,
		Rooms:       req.Rooms,
		Floor:       req.Floor,
		Type:        req.Type,
		Status:      StatusActive,
		City:        location.NormalizeCity(req.City),
		District:    req.District,
		Images:      buildImages(req.ImageURLs),
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	s.logger.Info("Listing created",
		zap.String("listingID", l.ID.String()),
		zap.String("userID", userID.String()),
		zap.String("type", string(l.Type)),
		zap.String("city", l.City),
	)
	return s.repo.FindByID(ctx, l.ID)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Search(ctx context.Context, query FilterQuery) ([]Listing, *common.Pagination, error) {
	return s.repo.Search(ctx, query)
}

func (s *service) MyListings(ctx context.Context, userID uuid.UUID) ([]Listing, error) {
	return s.repo.FindByUser(ctx, userID)
}

// authorize returns the listing when the actor owns it or is an admin.
func (s *service) authorize(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*Listing, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.UserID != actorID && actorRole != common.RoleAdmin {
		return nil, common.ErrForbidden.WithDetails("You can only manage your own listings.")
	}
	return l, nil
}

// Update applies a partial update. A provided imageUrls array replaces
// the stored image set wholesale, with the first URL as primary.
func (s *service) Update(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID, req UpdateListingRequest) (*Listing, error) {
	l, err := s.authorize(ctx, actorID, actorRole, id)
	if err != nil {
		return nil, err
	}

	if err := s.validateReferences(ctx, req.CategoryID, req.LocationID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		l.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Price != nil {
		l.Price = *req.Price
	}
	if req.Area != nil {
		l.Area = *req.Area
	}
	if req.Rooms != nil {
		l.Rooms = *req.Rooms
	}
	if req.Floor != nil {
		l.Floor = req.Floor
	}
	if req.Type != nil {
		l.Type = *req.Type
	}
	if req.Status != nil {
		if !IsValidStatus(*req.Status) {
			return nil, common.ErrBadRequest.WithDetails("Invalid listing status.")
		}
		l.Status = *req.Status
	}
	if req.City != nil {
		l.City = location.NormalizeCity(*req.City)
	}
	if req.District != nil {
		l.District = req.District
	}
	if req.CategoryID != nil {
		l.CategoryID = req.CategoryID
	}
	if req.LocationID != nil {
		l.LocationID = req.LocationID
	}

	replaceImages := false
	if req.ImageURLs != nil {
		l.Images = buildImages(*req.ImageURLs)
		replaceImages = true
	}

	if err := s.repo.Update(ctx, l, replaceImages); err != nil {
		return nil, err
	}

	s.logger.Info("Listing updated", zap.String("listingID", id.String()), zap.String("actorID", actorID.String()))
	return s.repo.FindByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) error {
	if _, err := s.authorize(ctx, actorID, actorRole, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Listing deleted", zap.String("listingID", id.String()), zap.String("actorID", actorID.String()))
	return nil
}

func (s *service) CityCounts(ctx context.Context) ([]CityCount, error) {
	return s.repo.CountByCity(ctx)
}

// File: internal/favorite/service.go
package favorite

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dreamhome_backend/internal/common"
	"dreamhome_backend/internal/listing"
)

// Service defines the interface for favorite business logic.
type Service interface {
	Add(ctx context.Context, userID, listingID uuid.UUID) error
	Remove(ctx context.Context, userID, listingID uuid.UUID) error
	ListMine(ctx context.Context, userID uuid.UUID) ([]Favorite, error)
}

type service struct {
	repo     Repository
	listings listing.Repository
	logger   *zap.Logger
}

// NewService creates a new favorite service.
func NewService(repo Repository, listings listing.Repository, logger *zap.Logger) Service {
	return &service{repo: repo, listings: listings, logger: logger.Named("favorite-service")}
}

// Add saves a listing to the user's favorites. Adding an already saved
// listing succeeds without creating a second row.
func (s *service) Add(ctx context.Context, userID, listingID uuid.UUID) error {
	if _, err := s.listings.FindByID(ctx, listingID); err != nil {
		return err
	}

	err := s.repo.Create(ctx, &Favorite{UserID: userID, ListingID: listingID})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil
		}
		return err
	}

	s.logger.Info("Listing added to favorites",
		zap.String("userID", userID.String()),
		zap.String("listingID", listingID.String()),
	)
	return nil
}

// Remove deletes a favorite. Removing a listing that was never saved
// returns not found.
func (s *service) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	return s.repo.Delete(ctx, userID, listingID)
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]Favorite, error) {
	return s.repo.FindByUser(ctx, userID)
}

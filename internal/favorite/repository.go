// File: internal/favorite/repository.go
package favorite

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dreamhome_backend/internal/common"
)

// Repository defines the interface for favorite data operations.
type Repository interface {
	Create(ctx context.Context, fav *Favorite) error
	Find(ctx context.Context, userID, listingID uuid.UUID) (*Favorite, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Favorite, error)
	Delete(ctx context.Context, userID, listingID uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM favorite repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "unique constraint") ||
		strings.Contains(err.Error(), "duplicate key value violates unique constraint") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (r *gormRepository) Create(ctx context.Context, fav *Favorite) error {
	if err := r.db.WithContext(ctx).Create(fav).Error; err != nil {
		if isUniqueViolation(err) {
			return common.ErrConflict.WithDetails("Listing is already in favorites.")
		}
		return err
	}
	return nil
}

func (r *gormRepository) Find(ctx context.Context, userID, listingID uuid.UUID) (*Favorite, error) {
	var fav Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		First(&fav).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Favorite not found.")
		}
		return nil, err
	}
	return &fav, nil
}

func (r *gormRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]Favorite, error) {
	var favorites []Favorite
	err := r.db.WithContext(ctx).
		Preload("Listing").
		Preload("Listing.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("listing_images.sort_order ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *gormRepository) Delete(ctx context.Context, userID, listingID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Favorite not found.")
	}
	return nil
}

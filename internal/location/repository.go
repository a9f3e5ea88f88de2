// File: internal/location/repository.go
package location

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dreamhome_backend/internal/common"
)

// Repository defines the interface for location data operations.
type Repository interface {
	Create(ctx context.Context, loc *Location) error
	FindByID(ctx context.Context, id uuid.UUID) (*Location, error)
	FindAll(ctx context.Context) ([]Location, error)
	FindByCity(ctx context.Context, city string) ([]Location, error)
	Update(ctx context.Context, loc *Location) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM location repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "unique constraint") ||
		strings.Contains(err.Error(), "duplicate key value violates unique constraint") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (r *gormRepository) Create(ctx context.Context, loc *Location) error {
	if err := r.db.WithContext(ctx).Create(loc).Error; err != nil {
		if isUniqueViolation(err) {
			return common.ErrConflict.WithDetails("Location with this city and district already exists.")
		}
		return err
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Location, error) {
	var loc Location
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&loc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Location not found.")
		}
		return nil, err
	}
	return &loc, nil
}

func (r *gormRepository) FindAll(ctx context.Context) ([]Location, error) {
	var locations []Location
	err := r.db.WithContext(ctx).Order("city ASC, district ASC").Find(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}

// FindByCity retrieves all locations whose city matches case-insensitively.
func (r *gormRepository) FindByCity(ctx context.Context, city string) ([]Location, error) {
	var locations []Location
	err := r.db.WithContext(ctx).
		Where("LOWER(city) = LOWER(?)", strings.TrimSpace(city)).
		Order("district ASC").
		Find(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *gormRepository) Update(ctx context.Context, loc *Location) error {
	if err := r.db.WithContext(ctx).Save(loc).Error; err != nil {
		if isUniqueViolation(err) {
			return common.ErrConflict.WithDetails("Location with this city and district already exists.")
		}
		return err
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Location{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Location not found.")
	}
	return nil
}

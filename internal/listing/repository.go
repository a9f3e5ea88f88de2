// File: internal/listing/repository.go
package listing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dreamhome_backend/internal/common"
	"dreamhome_backend/internal/location"
)

// Repository defines the interface for listing data operations.
type Repository interface {
	Create(ctx context.Context, listing *Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Listing, error)
	Search(ctx context.Context, query FilterQuery) ([]Listing, *common.Pagination, error)
	Update(ctx context.Context, listing *Listing, replaceImages bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByCity(ctx context.Context) ([]CityCount, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM listing repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) preloader(query *gorm.DB) *gorm.DB {
	return query.Preload("User").
		Preload("Category").
		Preload("Location").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("listing_images.sort_order ASC")
		})
}

// Create inserts a listing and its images in one transaction.
func (r *gormRepository) Create(ctx context.Context, listing *Listing) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(listing).Error; err != nil {
			return fmt.Errorf("failed to create listing: %w", err)
		}
		return nil
	})
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	var l Listing
	err := r.preloader(r.db.WithContext(ctx)).Where("listings.id = ?", id).First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Listing not found.")
		}
		return nil, err
	}
	return &l, nil
}

func (r *gormRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]Listing, error) {
	var listings []Listing
	err := r.preloader(r.db.WithContext(ctx)).
		Where("listings.user_id = ?", userID).
		Order("listings.created_at DESC").
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

// Search returns active listings matching every provided filter. The
// city and category filters match case-insensitive substrings; a city
// filter also matches the linked location's city.
func (r *gormRepository) Search(ctx context.Context, query FilterQuery) ([]Listing, *common.Pagination, error) {
	var listings []Listing
	var totalItems int64

	dbQuery := r.db.WithContext(ctx).Model(&Listing{}).
		Select("listings.*").
		Where("listings.status = ?", StatusActive)

	joinedLocations := false
	if query.City != nil && strings.TrimSpace(*query.City) != "" {
		term := "%" + strings.ToLower(strings.TrimSpace(*query.City)) + "%"
		dbQuery = dbQuery.
			Joins("LEFT JOIN locations ON locations.id = listings.location_id").
			Where("LOWER(listings.city) LIKE ? OR LOWER(locations.city) LIKE ?", term, term)
		joinedLocations = true
	}
	if query.District != nil && strings.TrimSpace(*query.District) != "" {
		term := "%" + strings.ToLower(strings.TrimSpace(*query.District)) + "%"
		if !joinedLocations {
			dbQuery = dbQuery.Joins("LEFT JOIN locations ON locations.id = listings.location_id")
		}
		dbQuery = dbQuery.Where("LOWER(listings.district) LIKE ? OR LOWER(locations.district) LIKE ?", term, term)
	}
	if query.Category != nil && strings.TrimSpace(*query.Category) != "" {
		term := "%" + strings.ToLower(strings.TrimSpace(*query.Category)) + "%"
		dbQuery = dbQuery.
			Joins("LEFT JOIN categories ON categories.id = listings.category_id").
			Where("LOWER(categories.name) LIKE ?", term)
	}
	if query.CategoryID != nil {
		dbQuery = dbQuery.Where("listings.category_id = ?", *query.CategoryID)
	}
	if query.LocationID != nil {
		dbQuery = dbQuery.Where("listings.location_id = ?", *query.LocationID)
	}
	if query.Type != nil {
		dbQuery = dbQuery.Where("listings.type = ?", *query.Type)
	}
	if query.MinPrice != nil {
		dbQuery = dbQuery.Where("listings.price >= ?", *query.MinPrice)
	}
	if query.MaxPrice != nil {
		dbQuery = dbQuery.Where("listings.price <= ?", *query.MaxPrice)
	}
	if query.MinArea != nil {
		dbQuery = dbQuery.Where("listings.area >= ?", *query.MinArea)
	}
	if query.MaxArea != nil {
		dbQuery = dbQuery.Where("listings.area <= ?", *query.MaxArea)
	}
	if query.MinRooms != nil {
		dbQuery = dbQuery.Where("listings.rooms >= ?", *query.MinRooms)
	}
	if query.MaxRooms != nil {
		dbQuery = dbQuery.Where("listings.rooms <= ?", *query.MaxRooms)
	}

	if err := dbQuery.Count(&totalItems).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to count listings: %w", err)
	}

	page, pageSize := common.NormalizePage(query.Page, query.PageSize)
	pagination := common.NewPagination(totalItems, page, pageSize)

	err := r.preloader(dbQuery).
		Order("listings.created_at DESC").
		Offset(common.PageOffset(page, pageSize)).
		Limit(pageSize).
		Find(&listings).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to search listings: %w", err)
	}

	return listings, pagination, nil
}

// Update saves listing fields and, when replaceImages is set, swaps the
// whole image set in the same transaction.
func (r *gormRepository) Update(ctx context.Context, listing *Listing, replaceImages bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Images", "User", "Category", "Location").Save(listing).Error; err != nil {
			return fmt.Errorf("failed to update listing: %w", err)
		}

		if replaceImages {
			if err := tx.Where("listing_id = ?", listing.ID).Delete(&ListingImage{}).Error; err != nil {
				return fmt.Errorf("failed to clear listing images: %w", err)
			}
			for i := range listing.Images {
				listing.Images[i].ListingID = listing.ID
			}
			if len(listing.Images) > 0 {
				if err := tx.Create(&listing.Images).Error; err != nil {
					return fmt.Errorf("failed to save listing images: %w", err)
				}
			}
		}
		return nil
	})
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", id).Delete(&ListingImage{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&Listing{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return common.ErrNotFound.WithDetails("Listing not found.")
		}
		return nil
	})
}

// CountByCity aggregates active listings per city, most listings first.
// Each city gets a representative image from a location whose city
// matches case-insensitively, when one carries an image.
func (r *gormRepository) CountByCity(ctx context.Context) ([]CityCount, error) {
	var counts []CityCount
	err := r.db.WithContext(ctx).Model(&Listing{}).
		Select("listings.city AS city, COUNT(*) AS count").
		Where("listings.status = ?", StatusActive).
		Group("listings.city").
		Order("count DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate listings by city: %w", err)
	}

	var locations []location.Location
	if err := r.db.WithContext(ctx).
		Where("image_url IS NOT NULL").
		Find(&locations).Error; err != nil {
		return nil, err
	}

	imagesByCity := make(map[string]*string, len(locations))
	for i := range locations {
		key := strings.ToLower(locations[i].City)
		if _, ok := imagesByCity[key]; !ok {
			imagesByCity[key] = locations[i].ImageURL
		}
	}

	for i := range counts {
		if img, ok := imagesByCity[strings.ToLower(counts[i].City)]; ok {
			counts[i].ImageURL = img
		}
	}

	return counts, nil
}

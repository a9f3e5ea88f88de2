// File: internal/favorite/model.go
package favorite

import (
	"time"

	"github.com/google/uuid"

	"dreamhome_backend/internal/common"
	"dreamhome_backend/internal/listing"
)

// Favorite links a user to a listing they saved. The (user, listing)
// pair is unique so saving twice stays a single row.
type Favorite struct {
	common.BaseModel
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_listing,unique"`
	ListingID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_listing,unique"`
	Listing   listing.Listing `gorm:"foreignKey:ListingID;references:ID;constraint:OnDelete:CASCADE;"`
}

// TableName specifies the table name for the Favorite model.
func (Favorite) TableName() string {
	return "favorites"
}

// --- DTOs ---

// AddFavoriteRequest names the listing to save.
type AddFavoriteRequest struct {
	ListingID uuid.UUID `json:"listingId" binding:"required"`
}

// ListingSummary is the minimal listing projection shown in the
// favorites list.
type ListingSummary struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Price        float64   `json:"price"`
	PrimaryImage *string   `json:"primaryImage,omitempty"`
}

// Response is one saved listing in the caller's favorites list.
type Response struct {
	ID        uuid.UUID      `json:"id"`
	Listing   ListingSummary `json:"listing"`
	CreatedAt time.Time      `json:"createdAt"`
}

// ToResponse converts a Favorite model to a Response DTO.
func ToResponse(f *Favorite) Response {
	return Response{
		ID: f.ID,
		Listing: ListingSummary{
			ID:           f.Listing.ID,
			Title:        f.Listing.Title,
			Price:        f.Listing.Price,
			PrimaryImage: primaryImageURL(&f.Listing),
		},
		CreatedAt: f.CreatedAt,
	}
}

func primaryImageURL(l *listing.Listing) *string {
	for i := range l.Images {
		if l.Images[i].IsPrimary {
			return &l.Images[i].URL
		}
	}
	if len(l.Images) > 0 {
		return &l.Images[0].URL
	}
	return nil
}

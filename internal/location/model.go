// File: internal/location/model.go
package location

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"dreamhome_backend/internal/common"
)

// Location represents a known city/district pair in the database.
type Location struct {
	common.BaseModel
	City     string  `gorm:"type:varchar(100);not null;index;uniqueIndex:idx_locations_city_district,unique"`
	District string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_locations_city_district,unique"`
	ImageURL *string `gorm:"type:text"`
}

// TableName specifies the table name for the Location model.
func (Location) TableName() string {
	return "locations"
}

// NormalizeCity trims the value, lowercases it and upper-cases the first
// rune, so "  aLMatY " becomes "Almaty". Comparison elsewhere stays
// case-insensitive; this only keeps stored values presentable.
func NormalizeCity(city string) string {
	city = strings.ToLower(strings.TrimSpace(city))
	if city == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(city)
	return string(unicode.ToUpper(r)) + city[size:]
}

// --- DTOs ---

// CreateLocationRequest defines the payload for creating a location.
type CreateLocationRequest struct {
	City     string  `json:"city" binding:"required,max=100"`
	District string  `json:"district" binding:"required,max=100"`
	ImageURL *string `json:"imageUrl,omitempty" binding:"omitempty,url"`
}

// UpdateLocationRequest defines the payload for updating a location.
// Nil fields leave the stored value untouched.
type UpdateLocationRequest struct {
	City     *string `json:"city,omitempty" binding:"omitempty,min=1,max=100"`
	District *string `json:"district,omitempty" binding:"omitempty,min=1,max=100"`
	ImageURL *string `json:"imageUrl,omitempty" binding:"omitempty,url"`
}

// Response defines the structure for location data in API responses.
type Response struct {
	ID        uuid.UUID `json:"id"`
	City      string    `json:"city"`
	District  string    `json:"district"`
	ImageURL  *string   `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToResponse converts a Location model to a Response DTO.
func ToResponse(loc *Location) Response {
	return Response{
		ID:        loc.ID,
		City:      loc.City,
		District:  loc.District,
		ImageURL:  loc.ImageURL,
		CreatedAt: loc.CreatedAt,
	}
}

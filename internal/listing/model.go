// File: internal/listing/model.go
package listing

import (
	"time"

	"github.com/google/uuid"

	"dreamhome_backend/internal/category"
	"dreamhome_backend/internal/common"
	"dreamhome_backend/internal/location"
	"dreamhome_backend/internal/user"
)

// ListingType is the transaction type of a listing.
type ListingType string

const (
	TypeSale ListingType = "SALE"
	TypeRent ListingType = "RENT"
)

// ListingStatus is the lifecycle status of a listing.
type ListingStatus string

const (
	StatusActive   ListingStatus = "ACTIVE"
	StatusReserved ListingStatus = "RESERVED"
	StatusSold     ListingStatus = "SOLD"
	StatusExpired  ListingStatus = "EXPIRED"
)

// IsValidStatus reports whether s is a known listing status.
func IsValidStatus(s ListingStatus) bool {
	switch s {
	case StatusActive, StatusReserved, StatusSold, StatusExpired:
		return true
	}
	return false
}

// Listing represents a property advertisement in the database.
type Listing struct {
	common.BaseModel
	UserID      uuid.UUID          `gorm:"type:uuid;not null;index"`
	User        user.User          `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
	CategoryID  *uuid.UUID         `gorm:"type:uuid;index"`
	Category    *category.Category `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:SET NULL;"`
	LocationID  *uuid.UUID         `gorm:"type:uuid;index"`
	Location    *location.Location `gorm:"foreignKey:LocationID;references:ID;constraint:OnDelete:SET NULL;"`
	Title       string             `gorm:"type:varchar(255);not null"`
	Description string             `gorm:"type:text"`
	Price       float64            `gorm:"not null"`
	Area        float64            `gorm:"not null"`
	Rooms       int                `gorm:"not null"`
	Floor       *int
	Type        ListingType    `gorm:"type:varchar(10);not null;index"`
	Status      ListingStatus  `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	City        string         `gorm:"type:varchar(100);not null;index"`
	District    *string        `gorm:"type:varchar(100)"`
	Images      []ListingImage `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE;"`
}

// TableName specifies the table name for the Listing model.
func (Listing) TableName() string {
	return "listings"
}

// ListingImage is an ordered image attached to a listing. The image at
// sort order zero is the primary one.
type ListingImage struct {
	common.BaseModel
	ListingID uuid.UUID `gorm:"type:uuid;not null;index"`
	URL       string    `gorm:"type:text;not null"`
	SortOrder int       `gorm:"not null;default:0"`
	IsPrimary bool      `gorm:"not null;default:false"`
}

// TableName specifies the table name for the ListingImage model.
func (ListingImage) TableName() string {
	return "listing_images"
}

// --- DTOs ---

// CreateListingRequest defines the payload for creating a listing.
type CreateListingRequest struct {
	Title       string      `json:"title" binding:"required,max=255"`
	Description string      `json:"description,omitempty"`
	Price       float64     `json:"price" binding:"required,gte=0"`
	Area        float64     `json:"area" binding:"required,gte=0"`
	Rooms       int         `json:"rooms" binding:"omitempty,gte=0"`
	Floor       *int        `json:"floor,omitempty"`
	Type        ListingType `json:"type" binding:"required,oneof=SALE RENT"`
	City        string      `json:"city" binding:"required,max=100"`
	District    *string     `json:"district,omitempty" binding:"omitempty,max=100"`
	CategoryID  uuid.UUID   `json:"categoryId" binding:"required"`
	LocationID  *uuid.UUID  `json:"locationId,omitempty"`
	ImageURLs   []string    `json:"imageUrls,omitempty" binding:"omitempty,dive,url"`
}

// UpdateListingRequest defines the payload for a partial listing update.
// Nil fields leave stored values untouched; a non-nil ImageURLs replaces
// the image set wholesale.
type UpdateListingRequest struct {
	Title       *string        `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string        `json:"description,omitempty"`
	Price       *float64       `json:"price,omitempty" binding:"omitempty,gte=0"`
	Area        *float64       `json:"area,omitempty" binding:"omitempty,gte=0"`
	Rooms       *int           `json:"rooms,omitempty" binding:"omitempty,gte=0"`
	Floor       *int           `json:"floor,omitempty"`
	Type        *ListingType   `json:"type,omitempty" binding:"omitempty,oneof=SALE RENT"`
	Status      *ListingStatus `json:"status,omitempty" binding:"omitempty,oneof=ACTIVE RESERVED SOLD EXPIRED"`
	City        *string        `json:"city,omitempty" binding:"omitempty,min=1,max=100"`
	District    *string        `json:"district,omitempty" binding:"omitempty,max=100"`
	CategoryID  *uuid.UUID     `json:"categoryId,omitempty"`
	LocationID  *uuid.UUID     `json:"locationId,omitempty"`
	ImageURLs   *[]string      `json:"imageUrls,omitempty" binding:"omitempty,dive,url"`
}

// FilterQuery holds the search filters for browsing listings. All filters
// combine with AND semantics.
type FilterQuery struct {
	Type       *ListingType `form:"type" binding:"omitempty,oneof=SALE RENT"`
	City       *string      `form:"city"`
	District   *string      `form:"district"`
	Category   *string      `form:"category"`
	CategoryID *uuid.UUID   `form:"categoryId"`
	LocationID *uuid.UUID   `form:"locationId"`
	MinPrice   *float64     `form:"priceMin" binding:"omitempty,gte=0"`
	MaxPrice   *float64     `form:"priceMax" binding:"omitempty,gte=0"`
	MinArea    *float64     `form:"minArea" binding:"omitempty,gte=0"`
	MaxArea    *float64     `form:"maxArea" binding:"omitempty,gte=0"`
	MinRooms   *int         `form:"minRooms" binding:"omitempty,gte=0"`
	MaxRooms   *int         `form:"maxRooms" binding:"omitempty,gte=0"`
	Page       int          `form:"page"`
	PageSize   int          `form:"pageSize"`
}

// ImageResponse describes a single listing image in API responses.
type ImageResponse struct {
	URL       string `json:"url"`
	SortOrder int    `json:"sortOrder"`
	IsPrimary bool   `json:"isPrimary"`
}

// Response defines the structure for listing data in API responses.
type Response struct {
	ID           uuid.UUID       `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Price        float64         `json:"price"`
	Area         float64         `json:"area"`
	Rooms        int             `json:"rooms"`
	Floor        *int            `json:"floor,omitempty"`
	Type         ListingType     `json:"type"`
	Status       ListingStatus   `json:"status"`
	User         user.Response   `json:"user"`
	Category     *string         `json:"category,omitempty"`
	City         string          `json:"city"`
	District     *string         `json:"district,omitempty"`
	PrimaryImage *string         `json:"primaryImage,omitempty"`
	Images       []ImageResponse `json:"images"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// CityCount is one row of the city aggregation: how many active listings
// a city has, plus a representative image when a matching location
// carries one.
type CityCount struct {
	City     string  `json:"city"`
	Count    int64   `json:"count"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// PagedResponse wraps a page of listings with pagination metadata.
type PagedResponse struct {
	Listings   []Response         `json:"listings"`
	Pagination *common.Pagination `json:"pagination"`
}

// ToResponse converts a Listing model to a Response DTO. The district
// falls back to the linked location's district when the listing itself
// has none.
func ToResponse(l *Listing) Response {
	resp := Response{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Area:        l.Area,
		Rooms:       l.Rooms,
		Floor:       l.Floor,
		Type:        l.Type,
		Status:      l.Status,
		User:        user.ToResponse(&l.User),
		City:        l.City,
		District:    l.District,
		Images:      make([]ImageResponse, 0, len(l.Images)),
		CreatedAt:   l.CreatedAt,
	}

	if l.Category != nil {
		resp.Category = &l.Category.Name
	}
	if resp.District == nil && l.Location != nil {
		resp.District = &l.Location.District
	}

	for i := range l.Images {
		img := &l.Images[i]
		resp.Images = append(resp.Images, ImageResponse{
			URL:       img.URL,
			SortOrder: img.SortOrder,
			IsPrimary: img.IsPrimary,
		})
		if img.IsPrimary && resp.PrimaryImage == nil {
			resp.PrimaryImage = &img.URL
		}
	}
	if resp.PrimaryImage == nil && len(l.Images) > 0 {
		resp.PrimaryImage = &l.Images[0].URL
	}

	return resp
}

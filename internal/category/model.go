// File: internal/category/model.go
package category

import (
	"time"

	"github.com/google/uuid"

	"dreamhome_backend/internal/common"
)

// Category represents a listing category in the database.
type Category struct {
	common.BaseModel
	Name        string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_name,unique"`
	Slug        string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_slug,unique"`
	Description *string `gorm:"type:text"`
}

// TableName specifies the table name for the Category model.
func (Category) TableName() string {
	return "categories"
}

// --- DTOs ---

// CreateCategoryRequest defines the payload for creating a category.
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description,omitempty"`
}

// UpdateCategoryRequest defines the payload for updating a category.
// Nil fields leave the stored value untouched.
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty"`
}

// Response defines the structure for category data in API responses.
type Response struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToResponse converts a Category model to a Response DTO.
func ToResponse(cat *Category) Response {
	return Response{
		ID:          cat.ID,
		Name:        cat.Name,
		Slug:        cat.Slug,
		Description: cat.Description,
		CreatedAt:   cat.CreatedAt,
	}
}

// File: internal/user/model.go
package user

import (
	"time"

	"github.com/google/uuid"

	"dreamhome_backend/internal/common"
)

// User represents the user model in the database.
type User struct {
	common.BaseModel         // Embeds ID, CreatedAt, UpdatedAt
	Email            string  `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash     string  `gorm:"type:varchar(255);not null"`
	FirstName        string  `gorm:"type:varchar(100);not null"`
	LastName         string  `gorm:"type:varchar(100);not null"`
	Phone            *string `gorm:"type:varchar(50)"`
	Role             string  `gorm:"type:varchar(50);not null;default:'USER'"`
	AgencyName       *string `gorm:"type:varchar(255)"`
	AvatarURL        *string `gorm:"type:text"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// --- DTOs ---

// UpdateProfileRequest defines the structure for partial profile updates.
// Nil fields leave the stored value untouched.
type UpdateProfileRequest struct {
	FirstName  *string `json:"firstName,omitempty" binding:"omitempty,min=1,max=100"`
	LastName   *string `json:"lastName,omitempty" binding:"omitempty,min=1,max=100"`
	Phone      *string `json:"phone,omitempty" binding:"omitempty,max=50"`
	AgencyName *string `json:"agencyName,omitempty" binding:"omitempty,max=255"`
	AvatarURL  *string `json:"avatarUrl,omitempty" binding:"omitempty,url"`
}

// ChangeRoleRequest defines the admin request to change a user's role.
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=USER AGENT ADMIN"`
}

// Response defines the structure for user data sent in API responses.
type Response struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Phone      *string   `json:"phone,omitempty"`
	Role       string    `json:"role"`
	AgencyName *string   `json:"agencyName,omitempty"`
	AvatarURL  *string   `json:"avatarUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToResponse converts a User model to a Response DTO.
func ToResponse(u *User) Response {
	return Response{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Phone:      u.Phone,
		Role:       u.Role,
		AgencyName: u.AgencyName,
		AvatarURL:  u.AvatarURL,
		CreatedAt:  u.CreatedAt,
	}
}

func (u *User) GetID() uuid.UUID {
	return u.ID
}

func (u *User) GetEmail() string {
	return u.Email
}

func (u *User) GetRole() string {
	return u.Role
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

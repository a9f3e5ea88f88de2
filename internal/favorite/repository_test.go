// File: internal/favorite/repository_test.go
package favorite

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"dreamhome_backend/internal/category"
	"dreamhome_backend/internal/common"
	"dreamhome_backend/internal/listing"
	"dreamhome_backend/internal/location"
	"dreamhome_backend/internal/user"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&user.User{},
		&category.Category{},
		&location.Location{},
		&listing.Listing{},
		&listing.ListingImage{},
		&Favorite{},
	))
	return db
}

func seedUserAndListing(t *testing.T, db *gorm.DB) (*user.User, *listing.Listing) {
	t.Helper()
	u := &user.User{
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "User",
		Role:         "USER",
	}
	require.NoError(t, db.Create(u).Error)

	l := &listing.Listing{
		UserID: u.ID, Title: "Flat", Price: 1, Area: 1, Rooms: 1,
		Type: listing.TypeSale, Status: listing.StatusActive, City: "Astana",
	}
	require.NoError(t, db.Create(l).Error)
	return u, l
}

func TestRepository_Create_DuplicateReturnsConflict(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)
	u, l := seedUserAndListing(t, db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Favorite{UserID: u.ID, ListingID: l.ID}))

	err := repo.Create(ctx, &Favorite{UserID: u.ID, ListingID: l.ID})
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrConflict.Code, apiErr.Code)
}

func TestRepository_Delete_MissingReturnsNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)
	u, l := seedUserAndListing(t, db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Favorite{UserID: u.ID, ListingID: l.ID}))
	require.NoError(t, repo.Delete(ctx, u.ID, l.ID))

	err := repo.Delete(ctx, u.ID, l.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRepository_FindByUser_PreloadsListing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)
	u, l := seedUserAndListing(t, db)
	ctx := context.Background()

	require.NoError(t, db.Create(&listing.ListingImage{ListingID: l.ID, URL: "/uploads/images/a.jpg", SortOrder: 0, IsPrimary: true}).Error)
	require.NoError(t, repo.Create(ctx, &Favorite{UserID: u.ID, ListingID: l.ID}))

	favorites, err := repo.FindByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "Flat", favorites[0].Listing.Title)
	require.Len(t, favorites[0].Listing.Images, 1)
	assert.True(t, favorites[0].Listing.Images[0].IsPrimary)
}

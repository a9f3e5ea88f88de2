// File: internal/conversation/repository_test.go
package conversation

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
	return openTestDB(t, ":memory:")
}

func openTestDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&user.User{},
		&category.Category{},
		&location.Location{},
		&listing.Listing{},
		&listing.ListingImage{},
		&Conversation{},
		&Message{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB) *user.User {
	t.Helper()
	u := &user.User{
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "User",
		Role:         "USER",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createConversation(t *testing.T, db *gorm.DB) (*gorm.DB, Repository, *Conversation, *user.User, *user.User) {
	t.Helper()
	repo := NewGORMRepository(db)
	seller := createTestUser(t, db)
	buyer := createTestUser(t, db)

	l := &listing.Listing{
		UserID: seller.ID, Title: "Flat", Price: 1, Area: 1, Rooms: 1,
		Type: listing.TypeSale, Status: listing.StatusActive, City: "Almaty",
	}
	require.NoError(t, db.Create(l).Error)

	conv := &Conversation{ListingID: &l.ID, BuyerID: buyer.ID, SellerID: seller.ID}
	require.NoError(t, repo.Create(context.Background(), conv))
	return db, repo, conv, buyer, seller
}

func TestRepository_Create_EnforcesOneThreadPerListingAndBuyer(t *testing.T) {
	_, repo, conv, _, _ := createConversation(t, setupTestDB(t))

	dup := &Conversation{ListingID: conv.ListingID, BuyerID: conv.BuyerID, SellerID: conv.SellerID}
	err := repo.Create(context.Background(), dup)

	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrConflict.Code, apiErr.Code)
}

func TestRepository_ListingDelete_DetachesConversation(t *testing.T) {
	// Foreign keys are off by default in sqlite; turn them on so the
	// ON DELETE clauses actually fire, like they do on postgres.
	db := openTestDB(t, "file::memory:?_foreign_keys=on")
	_, repo, conv, buyer, _ := createConversation(t, db)
	ctx := context.Background()

	require.NoError(t, repo.CreateMessage(ctx, &Message{ConversationID: conv.ID, SenderID: buyer.ID, Body: "Is this available?"}))

	// Deleting the listing must not fail on the thread referencing it.
	require.NoError(t, listing.NewGORMRepository(db).Delete(ctx, *conv.ListingID))

	got, err := repo.FindByIDWithMessages(ctx, conv.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ListingID)
	assert.Nil(t, got.Listing)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "Is this available?", got.Messages[0].Body)
}

func TestRepository_MarkMessagesRead_OnlyCounterpartAndIdempotent(t *testing.T) {
	_, repo, conv, buyer, seller := createConversation(t, setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateMessage(ctx, &Message{ConversationID: conv.ID, SenderID: seller.ID, Body: "hello"}))
	require.NoError(t, repo.CreateMessage(ctx, &Message{ConversationID: conv.ID, SenderID: seller.ID, Body: "still there?"}))
	require.NoError(t, repo.CreateMessage(ctx, &Message{ConversationID: conv.ID, SenderID: buyer.ID, Body: "yes"}))

	unread, err := repo.CountUnread(ctx, conv.ID, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	// The buyer marks the thread read: only the seller's messages flip.
	updated, err := repo.MarkMessagesRead(ctx, conv.ID, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	// The buyer's own message stays unread from the seller's side.
	unreadForSeller, err := repo.CountUnread(ctx, conv.ID, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unreadForSeller)

	// Repeating the call changes nothing.
	updated, err = repo.MarkMessagesRead(ctx, conv.ID, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)
}

func TestRepository_LastMessage(t *testing.T) {
	_, repo, conv, buyer, seller := createConversation(t, setupTestDB(t))
	ctx := context.Background()

	last, err := repo.LastMessage(ctx, conv.ID)
	require.NoError(t, err)
	assert.Nil(t, last)

	require.NoError(t, repo.CreateMessage(ctx, &Message{ConversationID: conv.ID, SenderID: buyer.ID, Body: "first"}))
	require.NoError(t, repo.CreateMessage(ctx, &Message{ConversationID: conv.ID, SenderID: seller.ID, Body: "second"}))

	last, err = repo.LastMessage(ctx, conv.ID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "second", last.Body)
}

func TestRepository_FindByParticipant_CoversBothSides(t *testing.T) {
	db := setupTestDB(t)
	_, repo, conv, buyer, seller := createConversation(t, db)
	ctx := context.Background()

	forBuyer, err := repo.FindByParticipant(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, forBuyer, 1)
	assert.Equal(t, conv.ID, forBuyer[0].ID)

	forSeller, err := repo.FindByParticipant(ctx, seller.ID)
	require.NoError(t, err)
	assert.Len(t, forSeller, 1)

	stranger := createTestUser(t, db)
	forStranger, err := repo.FindByParticipant(ctx, stranger.ID)
	require.NoError(t, err)
	assert.Empty(t, forStranger)
}

// File: internal/conversation/service_test.go
package conversation

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"dreamhome_backend/internal/common"
	"dreamhome_backend/internal/listing"
)

// MockConversationRepository is a mock type for conversation.Repository
type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) Create(ctx context.Context, conv *Conversation) error {
	args := m.Called(ctx, conv)
	return args.Error(0)
}

func (m *MockConversationRepository) FindByID(ctx context.Context, id uuid.UUID) (*Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Conversation), args.Error(1)
}

func (m *MockConversationRepository) FindByIDWithMessages(ctx context.Context, id uuid.UUID) (*Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Conversation), args.Error(1)
}

func (m *MockConversationRepository) FindByListingAndBuyer(ctx context.Context, listingID, buyerID uuid.UUID) (*Conversation, error) {
	args := m.Called(ctx, listingID, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Conversation), args.Error(1)
}

func (m *MockConversationRepository) FindByParticipant(ctx context.Context, userID uuid.UUID) ([]Conversation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Conversation), args.Error(1)
}

func (m *MockConversationRepository) Touch(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockConversationRepository) CreateMessage(ctx context.Context, msg *Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockConversationRepository) LastMessage(ctx context.Context, conversationID uuid.UUID) (*Message, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Message), args.Error(1)
}

func (m *MockConversationRepository) CountUnread(ctx context.Context, conversationID, counterpartID uuid.UUID) (int64, error) {
	args := m.Called(ctx, conversationID, counterpartID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockConversationRepository) MarkMessagesRead(ctx context.Context, conversationID, counterpartID uuid.UUID) (int64, error) {
	args := m.Called(ctx, conversationID, counterpartID)
	return args.Get(0).(int64), args.Error(1)
}

// MockListingRepository is a mock type for listing.Repository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, l *listing.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Listing), args.Error(1)
}

func (m *MockListingRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]listing.Listing, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]listing.Listing), args.Error(1)
}

func (m *MockListingRepository) Search(ctx context.Context, query listing.FilterQuery) ([]listing.Listing, *common.Pagination, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]listing.Listing), args.Get(1).(*common.Pagination), args.Error(2)
}

func (m *MockListingRepository) Update(ctx context.Context, l *listing.Listing, replaceImages bool) error {
	args := m.Called(ctx, l, replaceImages)
	return args.Error(0)
}

func (m *MockListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockListingRepository) CountByCity(ctx context.Context) ([]listing.CityCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]listing.CityCount), args.Error(1)
}

func TestService_Start_CreatesNewConversation(t *testing.T) {
	repo := new(MockConversationRepository)
	listings := new(MockListingRepository)
	svc := NewService(repo, listings, zap.NewNop())

	buyerID := uuid.New()
	sellerID := uuid.New()
	listingID := uuid.New()

	repo.On("FindByListingAndBuyer", mock.Anything, listingID, buyerID).
		Return(nil, common.ErrNotFound.WithDetails("Conversation not found.")).Once()
	listings.On("FindByID", mock.Anything, listingID).
		Return(&listing.Listing{UserID: sellerID}, nil)

	var createdConv *Conversation
	repo.On("Create", mock.Anything, mock.AnythingOfType("*conversation.Conversation")).
		Run(func(args mock.Arguments) {
			createdConv = args.Get(1).(*Conversation)
			createdConv.ID = uuid.New()
		}).
		Return(nil)

	var storedMsg *Message
	repo.On("CreateMessage", mock.Anything, mock.AnythingOfType("*conversation.Message")).
		Run(func(args mock.Arguments) {
			storedMsg = args.Get(1).(*Message)
		}).
		Return(nil)
	repo.On("Touch", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil)
	repo.On("FindByIDWithMessages", mock.Anything, mock.AnythingOfType("uuid.UUID")).
		Return(&Conversation{}, nil)

	_, created, err := svc.Start(context.Background(), buyerID, StartConversationRequest{
		ListingID: listingID,
		Message:   "Is this available?",
	})

	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, sellerID, createdConv.SellerID)
	assert.Equal(t, buyerID, createdConv.BuyerID)
	assert.Equal(t, "Is this available?", storedMsg.Body)
	assert.Equal(t, buyerID, storedMsg.SenderID)
	repo.AssertExpectations(t)
}

func TestService_Start_ReusesExistingConversation(t *testing.T) {
	repo := new(MockConversationRepository)
	listings := new(MockListingRepository)
	svc := NewService(repo, listings, zap.NewNop())

	buyerID := uuid.New()
	listingID := uuid.New()
	existing := &Conversation{ListingID: &listingID, BuyerID: buyerID}
	existing.ID = uuid.New()

	repo.On("FindByListingAndBuyer", mock.Anything, listingID, buyerID).
		Return(existing, nil)
	repo.On("CreateMessage", mock.Anything, mock.AnythingOfType("*conversation.Message")).Return(nil)
	repo.On("Touch", mock.Anything, existing.ID).Return(nil)
	repo.On("FindByIDWithMessages", mock.Anything, existing.ID).
		Return(existing, nil)

	conv, created, err := svc.Start(context.Background(), buyerID, StartConversationRequest{
		ListingID: listingID,
		Message:   "Still interested.",
	})

	// The second start reuses the thread but still appends the message.
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing, conv)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertCalled(t, "CreateMessage", mock.Anything, mock.AnythingOfType("*conversation.Message"))
}

func TestService_Start_RejectsOwnListing(t *testing.T) {
	repo := new(MockConversationRepository)
	listings := new(MockListingRepository)
	svc := NewService(repo, listings, zap.NewNop())

	sellerID := uuid.New()
	listingID := uuid.New()

	repo.On("FindByListingAndBuyer", mock.Anything, listingID, sellerID).
		Return(nil, common.ErrNotFound.WithDetails("Conversation not found."))
	listings.On("FindByID", mock.Anything, listingID).
		Return(&listing.Listing{UserID: sellerID}, nil)

	_, _, err := svc.Start(context.Background(), sellerID, StartConversationRequest{
		ListingID: listingID,
		Message:   "hello",
	})

	assert.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrBadRequest.Code, apiErr.Code)
}

func TestService_Start_RejectsEmptyMessage(t *testing.T) {
	repo := new(MockConversationRepository)
	listings := new(MockListingRepository)
	svc := NewService(repo, listings, zap.NewNop())

	_, _, err := svc.Start(context.Background(), uuid.New(), StartConversationRequest{
		ListingID: uuid.New(),
		Message:   "   ",
	})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Send_RejectsNonParticipant(t *testing.T) {
	repo := new(MockConversationRepository)
	listings := new(MockListingRepository)
	svc := NewService(repo, listings, zap.NewNop())

	conversationID := uuid.New()
	repo.On("FindByID", mock.Anything, conversationID).
		Return(&Conversation{BuyerID: uuid.New(), SellerID: uuid.New()}, nil)

	_, err := svc.Send(context.Background(), uuid.New(), conversationID, "hello")

	assert.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrForbidden.Code, apiErr.Code)
	repo.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestService_Send_StoresMessageAndTouchesThread(t *testing.T) {
	repo := new(MockConversationRepository)
	listings := new(MockListingRepository)
	svc := NewService(repo, listings, zap.NewNop())

	buyerID := uuid.New()
	conversationID := uuid.New()
	repo.On("FindByID", mock.Anything, conversationID).
		Return(&Conversation{BuyerID: buyerID, SellerID: uuid.New()}, nil)
	repo.On("CreateMessage", mock.Anything, mock.AnythingOfType("*conversation.Message")).Return(nil)
	repo.On("Touch", mock.Anything, conversationID).Return(nil)

	msg, err := svc.Send(context.Background(), buyerID, conversationID, "  is it still available?  ")

	assert.NoError(t, err)
	assert.Equal(t, "is it still available?", msg.Body)
	assert.Equal(t, buyerID, msg.SenderID)
	repo.AssertExpectations(t)
}

func TestService_Send_RejectsEmptyBody(t *testing.T) {
	repo := new(MockConversationRepository)
	listings := new(MockListingRepository)
	svc := NewService(repo, listings, zap.NewNop())

	buyerID := uuid.New()
	conversationID := uuid.New()
	repo.On("FindByID", mock.Anything, conversationID).
		Return(&Conversation{BuyerID: buyerID, SellerID: uuid.New()}, nil)

	_, err := svc.Send(context.Background(), buyerID, conversationID, "   ")

	assert.Error(t, err)
	repo.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestService_MarkRead_TargetsCounterpartMessagesOnly(t *testing.T) {
	repo := new(MockConversationRepository)
	listings := new(MockListingRepository)
	svc := NewService(repo, listings, zap.NewNop())

	buyerID := uuid.New()
	sellerID := uuid.New()
	conversationID := uuid.New()
	repo.On("FindByID", mock.Anything, conversationID).
		Return(&Conversation{BuyerID: buyerID, SellerID: sellerID}, nil)
	// The buyer marking the thread read only affects the seller's messages.
	repo.On("MarkMessagesRead", mock.Anything, conversationID, sellerID).
		Return(int64(3), nil)

	updated, err := svc.MarkRead(context.Background(), buyerID, conversationID)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), updated)
	repo.AssertExpectations(t)
}

func TestService_MarkRead_RejectsNonParticipant(t *testing.T) {
	repo := new(MockConversationRepository)
	listings := new(MockListingRepository)
	svc := NewService(repo, listings, zap.NewNop())

	conversationID := uuid.New()
	repo.On("FindByID", mock.Anything, conversationID).
		Return(&Conversation{BuyerID: uuid.New(), SellerID: uuid.New()}, nil)

	_, err := svc.MarkRead(context.Background(), uuid.New(), conversationID)

	assert.Error(t, err)
	repo.AssertNotCalled(t, "MarkMessagesRead", mock.Anything, mock.Anything, mock.Anything)
}

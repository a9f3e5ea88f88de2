// File: internal/conversation/service.go
package conversation

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dreamhome_backend/internal/common"
	"dreamhome_backend/internal/listing"
	"dreamhome_backend/internal/user"
)

// Service defines the interface for conversation business logic.
type Service interface {
	Start(ctx context.Context, buyerID uuid.UUID, req StartConversationRequest) (*Conversation, bool, error)
	Send(ctx context.Context, senderID, conversationID uuid.UUID, body string) (*Message, error)
	Get(ctx context.Context, userID, conversationID uuid.UUID) (*Conversation, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]Summary, error)
	MarkRead(ctx context.Context, userID, conversationID uuid.UUID) (int64, error)
}

type service struct {
	repo     Repository
	listings listing.Repository
	logger   *zap.Logger
}

// NewService creates a new conversation service.
func NewService(repo Repository, listings listing.Repository, logger *zap.Logger) Service {
	return &service{repo: repo, listings: listings, logger: logger.Named("conversation-service")}
}

// Start opens the thread for a listing, or reuses the existing one for
// this buyer, and appends the opening message either way. The listing
// owner at this moment becomes the thread's seller for good. Sellers
// cannot open threads on their own listings.
func (s *service) Start(ctx context.Context, buyerID uuid.UUID, req StartConversationRequest) (*Conversation, bool, error) {
	body := strings.TrimSpace(req.Message)
	if body == "" {
		return nil, false, common.ErrBadRequest.WithDetails("Message body cannot be empty.")
	}

	created := false
	conv, err := s.repo.FindByListingAndBuyer(ctx, req.ListingID, buyerID)
	if errors.Is(err, common.ErrNotFound) {
		l, lerr := s.listings.FindByID(ctx, req.ListingID)
		if lerr != nil {
			return nil, false, lerr
		}
		if l.UserID == buyerID {
			return nil, false, common.ErrBadRequest.WithDetails("You cannot start a conversation about your own listing.")
		}

		conv = &Conversation{
			ListingID: &req.ListingID,
			BuyerID:   buyerID,
			SellerID:  l.UserID,
		}
		if cerr := s.repo.Create(ctx, conv); cerr != nil {
			// A concurrent request can win the race on the unique pair.
			if !errors.Is(cerr, common.ErrConflict) {
				return nil, false, cerr
			}
			conv, err = s.repo.FindByListingAndBuyer(ctx, req.ListingID, buyerID)
			if err != nil {
				return nil, false, err
			}
		} else {
			created = true
			s.logger.Info("Conversation started",
				zap.String("conversationID", conv.ID.String()),
				zap.String("listingID", req.ListingID.String()),
				zap.String("buyerID", buyerID.String()),
			)
		}
	} else if err != nil {
		return nil, false, err
	}

	msg := &Message{ConversationID: conv.ID, SenderID: buyerID, Body: body}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, false, err
	}
	if err := s.repo.Touch(ctx, conv.ID); err != nil {
		s.logger.Warn("Failed to touch conversation after start",
			zap.String("conversationID", conv.ID.String()),
			zap.Error(err),
		)
	}

	full, err := s.repo.FindByIDWithMessages(ctx, conv.ID)
	if err != nil {
		return nil, false, err
	}
	return full, created, nil
}

// Send appends a message to a thread the sender participates in and
// bumps the thread's activity timestamp.
func (s *service) Send(ctx context.Context, senderID, conversationID uuid.UUID, body string) (*Message, error) {
	conv, err := s.repo.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.IsParticipant(senderID) {
		return nil, common.ErrForbidden.WithDetails("You are not a participant of this conversation.")
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, common.ErrBadRequest.WithDetails("Message body cannot be empty.")
	}

	msg := &Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
	}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	if err := s.repo.Touch(ctx, conversationID); err != nil {
		s.logger.Warn("Failed to touch conversation after send",
			zap.String("conversationID", conversationID.String()),
			zap.Error(err),
		)
	}
	return msg, nil
}

// Get returns a full thread with its messages. Only participants may
// read it.
func (s *service) Get(ctx context.Context, userID, conversationID uuid.UUID) (*Conversation, error) {
	conv, err := s.repo.FindByIDWithMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.IsParticipant(userID) {
		return nil, common.ErrForbidden.WithDetails("You are not a participant of this conversation.")
	}
	return conv, nil
}

// ListMine returns the caller's threads, most recently active first,
// each with its last message and the caller's unread count.
func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]Summary, error) {
	conversations, err := s.repo.FindByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(conversations))
	for i := range conversations {
		conv := &conversations[i]

		summary := Summary{
			ID:        conv.ID,
			ListingID: conv.ListingID,
			Buyer:     user.ToResponse(&conv.Buyer),
			Seller:    user.ToResponse(&conv.Seller),
			UpdatedAt: conv.UpdatedAt,
		}
		if conv.Listing != nil {
			summary.ListingTitle = &conv.Listing.Title
			summary.ListingPrimaryImage = primaryImageURL(conv.Listing)
		}

		last, err := s.repo.LastMessage(ctx, conv.ID)
		if err != nil {
			return nil, err
		}
		if last != nil {
			resp := ToMessageResponse(last, userID)
			summary.LastMessage = &resp
		}

		unread, err := s.repo.CountUnread(ctx, conv.ID, conv.Counterpart(userID))
		if err != nil {
			return nil, err
		}
		summary.UnreadCount = unread
		summary.HasUnread = unread > 0

		summaries = append(summaries, summary)
	}
	return summaries, nil
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

// MarkRead marks the counterpart's messages as read and returns how
// many changed. The caller's own messages are never touched.
func (s *service) MarkRead(ctx context.Context, userID, conversationID uuid.UUID) (int64, error) {
	conv, err := s.repo.FindByID(ctx, conversationID)
	if err != nil {
		return 0, err
	}
	if !conv.IsParticipant(userID) {
		return 0, common.ErrForbidden.WithDetails("You are not a participant of this conversation.")
	}
	return s.repo.MarkMessagesRead(ctx, conversationID, conv.Counterpart(userID))
}

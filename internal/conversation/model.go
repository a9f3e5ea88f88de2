// File: internal/conversation/model.go
package conversation

import (
	"time"

	"github.com/google/uuid"

	"dreamhome_backend/internal/common"
	"dreamhome_backend/internal/listing"
	"dreamhome_backend/internal/user"
)

// Conversation is a message thread between a buyer and the seller of a
// listing. One thread exists per (listing, buyer) pair; the seller is
// recorded when the thread starts and never changes afterwards, even if
// the listing is later reassigned or deleted. ListingID is nullable so
// the thread and its messages survive when the listing is removed.
type Conversation struct {
	common.BaseModel
	ListingID *uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_conversations_listing_buyer,unique"`
	Listing   *listing.Listing `gorm:"foreignKey:ListingID;references:ID;constraint:OnDelete:SET NULL;"`
	BuyerID   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_conversations_listing_buyer,unique"`
	Buyer     user.User        `gorm:"foreignKey:BuyerID;references:ID;constraint:OnDelete:CASCADE;"`
	SellerID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	Seller    user.User        `gorm:"foreignKey:SellerID;references:ID;constraint:OnDelete:CASCADE;"`
	Messages  []Message        `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE;"`
}

// TableName specifies the table name for the Conversation model.
func (Conversation) TableName() string {
	return "conversations"
}

// IsParticipant reports whether the given user is the buyer or seller.
func (c *Conversation) IsParticipant(userID uuid.UUID) bool {
	return c.BuyerID == userID || c.SellerID == userID
}

// Counterpart returns the other participant's ID.
func (c *Conversation) Counterpart(userID uuid.UUID) uuid.UUID {
	if c.BuyerID == userID {
		return c.SellerID
	}
	return c.BuyerID
}

// Message is a single message inside a conversation.
type Message struct {
	common.BaseModel
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Body           string    `gorm:"type:text;not null"`
	IsRead         bool      `gorm:"not null;default:false"`
}

// TableName specifies the table name for the Message model.
func (Message) TableName() string {
	return "messages"
}

// --- DTOs ---

// StartConversationRequest opens (or reuses) the thread for a listing
// and posts the opening message.
type StartConversationRequest struct {
	ListingID uuid.UUID `json:"listingId" binding:"required"`
	Message   string    `json:"message" binding:"required,min=1"`
}

// SendMessageRequest defines the payload for sending a message.
type SendMessageRequest struct {
	Body string `json:"body" binding:"required,min=1"`
}

// MessageResponse is a single message in API responses. IsMine is
// computed for the requesting user.
type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	SenderID  uuid.UUID `json:"senderId"`
	Body      string    `json:"body"`
	IsRead    bool      `json:"isRead"`
	IsMine    bool      `json:"isMine"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToMessageResponse converts a Message model to a MessageResponse DTO
// from the viewer's perspective.
func ToMessageResponse(m *Message, viewerID uuid.UUID) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		SenderID:  m.SenderID,
		Body:      m.Body,
		IsRead:    m.IsRead,
		IsMine:    m.SenderID == viewerID,
		CreatedAt: m.CreatedAt,
	}
}

// Summary is one thread in the caller's conversation list.
type Summary struct {
	ID                  uuid.UUID        `json:"id"`
	ListingID           *uuid.UUID       `json:"listingId,omitempty"`
	ListingTitle        *string          `json:"listingTitle,omitempty"`
	ListingPrimaryImage *string          `json:"listingPrimaryImage,omitempty"`
	Buyer               user.Response    `json:"buyer"`
	Seller              user.Response    `json:"seller"`
	LastMessage         *MessageResponse `json:"lastMessage,omitempty"`
	UnreadCount         int64            `json:"unreadCount"`
	HasUnread           bool             `json:"hasUnread"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// Detail is a full thread with its messages, oldest first.
type Detail struct {
	ID        uuid.UUID         `json:"id"`
	ListingID *uuid.UUID        `json:"listingId,omitempty"`
	Buyer     user.Response     `json:"buyer"`
	Seller    user.Response     `json:"seller"`
	Messages  []MessageResponse `json:"messages"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ToDetail converts a Conversation with loaded messages to a Detail DTO
// from the viewer's perspective.
func ToDetail(c *Conversation, viewerID uuid.UUID) Detail {
	messages := make([]MessageResponse, 0, len(c.Messages))
	for i := range c.Messages {
		messages = append(messages, ToMessageResponse(&c.Messages[i], viewerID))
	}
	return Detail{
		ID:        c.ID,
		ListingID: c.ListingID,
		Buyer:     user.ToResponse(&c.Buyer),
		Seller:    user.ToResponse(&c.Seller),
		Messages:  messages,
		CreatedAt: c.CreatedAt,
	}
}

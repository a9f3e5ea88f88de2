// File: internal/conversation/repository.go
package conversation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dreamhome_backend/internal/common"
)

// Repository defines the interface for conversation data operations.
type Repository interface {
	Create(ctx context.Context, conv *Conversation) error
	FindByID(ctx context.Context, id uuid.UUID) (*Conversation, error)
	FindByIDWithMessages(ctx context.Context, id uuid.UUID) (*Conversation, error)
	FindByListingAndBuyer(ctx context.Context, listingID, buyerID uuid.UUID) (*Conversation, error)
	FindByParticipant(ctx context.Context, userID uuid.UUID) ([]Conversation, error)
	Touch(ctx context.Context, id uuid.UUID) error
	CreateMessage(ctx context.Context, msg *Message) error
	LastMessage(ctx context.Context, conversationID uuid.UUID) (*Message, error)
	CountUnread(ctx context.Context, conversationID, counterpartID uuid.UUID) (int64, error)
	MarkMessagesRead(ctx context.Context, conversationID, counterpartID uuid.UUID) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM conversation repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "unique constraint") ||
		strings.Contains(err.Error(), "duplicate key value violates unique constraint") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (r *gormRepository) Create(ctx context.Context, conv *Conversation) error {
	if err := r.db.WithContext(ctx).Create(conv).Error; err != nil {
		if isUniqueViolation(err) {
			return common.ErrConflict.WithDetails("Conversation for this listing already exists.")
		}
		return err
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Conversation, error) {
	var conv Conversation
	err := r.db.WithContext(ctx).
		Preload("Buyer").
		Preload("Seller").
		Preload("Listing").
		Where("id = ?", id).
		First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Conversation not found.")
		}
		return nil, err
	}
	return &conv, nil
}

func (r *gormRepository) FindByIDWithMessages(ctx context.Context, id uuid.UUID) (*Conversation, error) {
	var conv Conversation
	err := r.db.WithContext(ctx).
		Preload("Buyer").
		Preload("Seller").
		Preload("Listing").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.created_at ASC")
		}).
		Where("id = ?", id).
		First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Conversation not found.")
		}
		return nil, err
	}
	return &conv, nil
}

func (r *gormRepository) FindByListingAndBuyer(ctx context.Context, listingID, buyerID uuid.UUID) (*Conversation, error) {
	var conv Conversation
	err := r.db.WithContext(ctx).
		Preload("Buyer").
		Preload("Seller").
		Preload("Listing").
		Where("listing_id = ? AND buyer_id = ?", listingID, buyerID).
		First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Conversation not found.")
		}
		return nil, err
	}
	return &conv, nil
}

// FindByParticipant returns every thread the user takes part in, most
// recently active first.
func (r *gormRepository) FindByParticipant(ctx context.Context, userID uuid.UUID) ([]Conversation, error) {
	var conversations []Conversation
	err := r.db.WithContext(ctx).
		Preload("Buyer").
		Preload("Seller").
		Preload("Listing").
		Preload("Listing.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("listing_images.sort_order ASC")
		}).
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

// Touch bumps the conversation's updated_at so it sorts to the top of
// the participant's list.
func (r *gormRepository) Touch(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&Conversation{}).
		Where("id = ?", id).
		Update("updated_at", time.Now()).Error
}

func (r *gormRepository) CreateMessage(ctx context.Context, msg *Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *gormRepository) LastMessage(ctx context.Context, conversationID uuid.UUID) (*Message, error) {
	var msg Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

// CountUnread counts messages from the counterpart that the caller has
// not read yet.
func (r *gormRepository) CountUnread(ctx context.Context, conversationID, counterpartID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Message{}).
		Where("conversation_id = ? AND sender_id = ? AND is_read = ?", conversationID, counterpartID, false).
		Count(&count).Error
	return count, err
}

// MarkMessagesRead marks the counterpart's unread messages as read and
// returns how many were affected. Already-read messages stay untouched,
// so repeating the call is a no-op.
func (r *gormRepository) MarkMessagesRead(ctx context.Context, conversationID, counterpartID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&Message{}).
		Where("conversation_id = ? AND sender_id = ? AND is_read = ?", conversationID, counterpartID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

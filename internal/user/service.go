// File: internal/user/service.go
package user

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dreamhome_backend/internal/common"
)

// Service defines the interface for user-related business logic.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*User, error)
	ListAll(ctx context.Context) ([]User, error)
	ChangeRole(ctx context.Context, actorID, targetID uuid.UUID, newRole string) (*User, error)
	DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger.Named("user-service")}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile applies a partial update to the caller's own profile.
// Nil request fields leave the stored values untouched.
func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*User, error) {
	usr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		usr.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		usr.LastName = *req.LastName
	}
	if req.Phone != nil {
		usr.Phone = req.Phone
	}
	if req.AgencyName != nil {
		usr.AgencyName = req.AgencyName
	}
	if req.AvatarURL != nil {
		usr.AvatarURL = req.AvatarURL
	}

	if err := s.repo.Update(ctx, usr); err != nil {
		return nil, err
	}

	s.logger.Info("User profile updated", zap.String("userID", id.String()))
	return usr, nil
}

func (s *service) ListAll(ctx context.Context) ([]User, error) {
	return s.repo.FindAll(ctx)
}

// ChangeRole updates the target user's role. Admins cannot change their
// own role.
func (s *service) ChangeRole(ctx context.Context, actorID, targetID uuid.UUID, newRole string) (*User, error) {
	if actorID == targetID {
		return nil, common.ErrForbidden.WithDetails("You cannot change your own role.")
	}
	if !common.IsValidRole(newRole) {
		return nil, common.ErrBadRequest.WithDetails("Invalid role.")
	}

	usr, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	usr.Role = newRole
	if err := s.repo.Update(ctx, usr); err != nil {
		return nil, err
	}

	s.logger.Info("User role changed",
		zap.String("actorID", actorID.String()),
		zap.String("targetID", targetID.String()),
		zap.String("newRole", newRole),
	)
	return usr, nil
}

// DeleteUser removes the target user. Admins cannot delete themselves.
func (s *service) DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return common.ErrForbidden.WithDetails("You cannot delete your own account.")
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		return err
	}

	s.logger.Info("User deleted",
		zap.String("actorID", actorID.String()),
		zap.String("targetID", targetID.String()),
	)
	return nil
}

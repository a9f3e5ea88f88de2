// File: internal/auth/service.go
package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"dreamhome_backend/internal/common"
	"dreamhome_backend/internal/shared"
	"dreamhome_backend/internal/user"
)

// Service defines the interface for authentication business logic.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
}

type service struct {
	users        user.Repository
	tokenService shared.TokenService
	logger       *zap.Logger
}

// NewService creates a new auth service.
func NewService(users user.Repository, tokenService shared.TokenService, logger *zap.Logger) Service {
	return &service{
		users:        users,
		tokenService: tokenService,
		logger:       logger.Named("auth-service"),
	}
}

// Register creates a new account and issues an access token.
// Self-registration only allows the USER and AGENT roles; admins are
// promoted through the admin user management endpoints.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, common.ErrConflict.WithDetails("User with this email already exists.")
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user by email: %w", err)
	}

	hashedPassword, err := common.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password during registration", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = common.RoleUser
	}

	newUser := &user.User{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         role,
		AgencyName:   req.AgencyName,
	}

	if err := s.users.Create(ctx, newUser); err != nil {
		if apiErr, ok := common.IsAPIError(err); ok {
			return nil, apiErr
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", zap.String("userID", newUser.ID.String()))
	return s.buildAuthResponse(newUser)
}

// Login verifies credentials and issues an access token.
func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	dbUser, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized.WithDetails("Invalid email or password.")
		}
		s.logger.Error("Error finding user by email during login", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Login failed due to an internal error.")
	}

	if err := common.CheckPassword(req.Password, dbUser.PasswordHash); err != nil {
		return nil, common.ErrUnauthorized.WithDetails("Invalid email or password.")
	}

	s.logger.Info("User logged in", zap.String("userID", dbUser.ID.String()))
	return s.buildAuthResponse(dbUser)
}

func (s *service) buildAuthResponse(dbUser *user.User) (*AuthResponse, error) {
	accessToken, expiresAt, err := s.tokenService.GenerateAccessToken(dbUser)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AuthResponse{
		User: user.ToResponse(dbUser),
		Token: TokenResponse{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			ExpiresAt:   expiresAt,
		},
	}, nil
}

// File: internal/auth/service_test.go
package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dreamhome_backend/internal/common"
	"dreamhome_backend/internal/config"
	"dreamhome_backend/internal/user"
)

// MockUserRepository is a mock type for user.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:         "test-secret-key-for-unit-tests",
		JWTAccessTokenExpiry: time.Hour,
	}
}

func TestJWTService_GenerateAndValidateToken(t *testing.T) {
	tokenService := NewJWTService(testConfig(), zap.NewNop())

	u := &user.User{
		Email: "jane@example.com",
		Role:  common.RoleAgent,
	}
	u.ID = uuid.New()

	tokenString, expiresAt, err := tokenService.GenerateAccessToken(u)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := tokenService.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, common.RoleAgent, claims.Role)
}

func TestJWTService_ValidateToken_RejectsGarbage(t *testing.T) {
	tokenService := NewJWTService(testConfig(), zap.NewNop())

	_, err := tokenService.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_RejectsWrongKey(t *testing.T) {
	issuer := NewJWTService(testConfig(), zap.NewNop())
	validator := NewJWTService(&config.Config{
		JWTSecretKey:         "a-different-secret",
		JWTAccessTokenExpiry: time.Hour,
	}, zap.NewNop())

	u := &user.User{Email: "jane@example.com", Role: common.RoleUser}
	u.ID = uuid.New()

	tokenString, _, err := issuer.GenerateAccessToken(u)
	require.NoError(t, err)

	_, err = validator.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestService_Register_Success(t *testing.T) {
	repo := new(MockUserRepository)
	tokenService := NewJWTService(testConfig(), zap.NewNop())
	svc := NewService(repo, tokenService, zap.NewNop())

	repo.On("FindByEmail", mock.Anything, "new@example.com").
		Return(nil, common.ErrNotFound.WithDetails("User not found with this email."))
	repo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*user.User).ID = uuid.New()
		}).
		Return(nil)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "new@example.com",
		Password:  "password123",
		FirstName: "New",
		LastName:  "User",
	})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", resp.User.Email)
	assert.Equal(t, common.RoleUser, resp.User.Role)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
	repo.AssertExpectations(t)
}

func TestService_Register_Conflict(t *testing.T) {
	repo := new(MockUserRepository)
	tokenService := NewJWTService(testConfig(), zap.NewNop())
	svc := NewService(repo, tokenService, zap.NewNop())

	repo.On("FindByEmail", mock.Anything, "taken@example.com").
		Return(&user.User{Email: "taken@example.com"}, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "taken@example.com",
		Password:  "password123",
		FirstName: "Dup",
		LastName:  "User",
	})

	assert.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrConflict.Code, apiErr.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Login_Success(t *testing.T) {
	repo := new(MockUserRepository)
	tokenService := NewJWTService(testConfig(), zap.NewNop())
	svc := NewService(repo, tokenService, zap.NewNop())

	hash, err := common.HashPassword("correct-horse")
	require.NoError(t, err)

	dbUser := &user.User{
		Email:        "jane@example.com",
		PasswordHash: hash,
		FirstName:    "Jane",
		LastName:     "Doe",
		Role:         common.RoleUser,
	}
	dbUser.ID = uuid.New()
	repo.On("FindByEmail", mock.Anything, "jane@example.com").Return(dbUser, nil)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.Equal(t, dbUser.ID, resp.User.ID)
}

func TestService_Login_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	tokenService := NewJWTService(testConfig(), zap.NewNop())
	svc := NewService(repo, tokenService, zap.NewNop())

	hash, err := common.HashPassword("correct-horse")
	require.NoError(t, err)
	repo.On("FindByEmail", mock.Anything, "jane@example.com").
		Return(&user.User{Email: "jane@example.com", PasswordHash: hash}, nil)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong-password",
	})

	assert.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrUnauthorized.Code, apiErr.Code)
}

func TestService_Login_UnknownEmailIsUnauthorized(t *testing.T) {
	repo := new(MockUserRepository)
	tokenService := NewJWTService(testConfig(), zap.NewNop())
	svc := NewService(repo, tokenService, zap.NewNop())

	repo.On("FindByEmail", mock.Anything, "ghost@example.com").
		Return(nil, common.ErrNotFound.WithDetails("User not found with this email."))

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	assert.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	// Unknown emails look the same as wrong passwords to the caller.
	assert.Equal(t, common.ErrUnauthorized.Code, apiErr.Code)
}

// File: internal/user/service_test.go
package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"dreamhome_backend/internal/common"
)

// MockUserRepository is a mock type for user.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_UpdateProfile_PartialUpdate(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewService(repo, zap.NewNop())

	userID := uuid.New()
	phone := "+7 701 000 0000"
	existing := &User{
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     &phone,
		Role:      common.RoleUser,
	}
	existing.ID = userID

	repo.On("FindByID", mock.Anything, userID).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	newFirst := "Janet"
	updated, err := svc.UpdateProfile(context.Background(), userID, UpdateProfileRequest{FirstName: &newFirst})

	assert.NoError(t, err)
	assert.Equal(t, "Janet", updated.FirstName)
	// Fields not present in the request stay as they were.
	assert.Equal(t, "Doe", updated.LastName)
	assert.Equal(t, &phone, updated.Phone)
	repo.AssertExpectations(t)
}

func TestService_ChangeRole_Success(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewService(repo, zap.NewNop())

	adminID := uuid.New()
	targetID := uuid.New()
	target := &User{Role: common.RoleUser}
	target.ID = targetID

	repo.On("FindByID", mock.Anything, targetID).Return(target, nil)
	repo.On("Update", mock.Anything, target).Return(nil)

	updated, err := svc.ChangeRole(context.Background(), adminID, targetID, common.RoleAgent)

	assert.NoError(t, err)
	assert.Equal(t, common.RoleAgent, updated.Role)
	repo.AssertExpectations(t)
}

func TestService_ChangeRole_SelfChangeForbidden(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewService(repo, zap.NewNop())

	adminID := uuid.New()
	_, err := svc.ChangeRole(context.Background(), adminID, adminID, common.RoleUser)

	assert.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrForbidden.Code, apiErr.Code)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestService_ChangeRole_InvalidRole(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewService(repo, zap.NewNop())

	_, err := svc.ChangeRole(context.Background(), uuid.New(), uuid.New(), "SUPERUSER")

	assert.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrBadRequest.Code, apiErr.Code)
}

func TestService_DeleteUser_SelfDeleteForbidden(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewService(repo, zap.NewNop())

	adminID := uuid.New()
	err := svc.DeleteUser(context.Background(), adminID, adminID)

	assert.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrForbidden.Code, apiErr.Code)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_DeleteUser_Success(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewService(repo, zap.NewNop())

	adminID := uuid.New()
	targetID := uuid.New()
	repo.On("Delete", mock.Anything, targetID).Return(nil)

	err := svc.DeleteUser(context.Background(), adminID, targetID)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"wishlist/internal/auth"
	apperrors "wishlist/internal/errors"
	"wishlist/internal/model"
)

// MockUserService is a mock implementation of UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, userName, password string) (*model.User, error) {
	args := m.Called(ctx, userName, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) CheckLogin(ctx context.Context, userName, password string) (*model.User, error) {
	args := m.Called(ctx, userName, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) FindByUserName(ctx context.Context, userName string) (*model.User, error) {
	args := m.Called(ctx, userName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, userName string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, userName, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func newAuthFixture() (*MockUserService, *MockTokenStore, *auth.JWTService, AuthService) {
	users := new(MockUserService)
	store := new(MockTokenStore)
	jwtService := auth.NewJWTService("test-secret")
	svc := NewAuthService(users, jwtService, store)
	return users, store, jwtService, svc
}

func TestAuthLoginIssuesTokens(t *testing.T) {
	users, store, jwtService, svc := newAuthFixture()

	users.On("CheckLogin", mock.Anything, "alice", "pw1").Return(&model.User{ID: 1, UserName: "alice"}, nil)
	store.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"), uint(1), "alice", auth.RefreshTokenExpiry).Return(nil)

	access, refresh, user, err := svc.Login(context.Background(), "alice", "pw1")

	assert.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)

	claims, err := jwtService.ValidateToken(access)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "alice", claims.UserName)

	refreshClaims, err := jwtService.ValidateToken(refresh)
	assert.NoError(t, err)
	assert.NotEmpty(t, refreshClaims.ID)
	store.AssertExpectations(t)
}

func TestAuthLoginInvalidCredentials(t *testing.T) {
	users, store, _, svc := newAuthFixture()

	users.On("CheckLogin", mock.Anything, "alice", "wrong").Return(nil, apperrors.ErrInvalidCredentials)

	_, _, _, err := svc.Login(context.Background(), "alice", "wrong")

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	store.AssertNotCalled(t, "StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthRefreshToken(t *testing.T) {
	_, store, jwtService, svc := newAuthFixture()

	tokenID, refresh, err := jwtService.GenerateRefreshToken(1, "alice")
	assert.NoError(t, err)

	store.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(1), "alice", nil)

	access, err := svc.RefreshToken(context.Background(), refresh)

	assert.NoError(t, err)
	claims, err := jwtService.ValidateToken(access)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
}

func TestAuthRefreshTokenStoreMismatch(t *testing.T) {
	_, store, jwtService, svc := newAuthFixture()

	tokenID, refresh, err := jwtService.GenerateRefreshToken(1, "alice")
	assert.NoError(t, err)

	store.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(2), "bob", nil)

	_, err = svc.RefreshToken(context.Background(), refresh)

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthRefreshTokenGarbage(t *testing.T) {
	_, _, _, svc := newAuthFixture()

	_, err := svc.RefreshToken(context.Background(), "not-a-token")

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthLogoutDeletesRefreshToken(t *testing.T) {
	_, store, jwtService, svc := newAuthFixture()

	tokenID, refresh, err := jwtService.GenerateRefreshToken(1, "alice")
	assert.NoError(t, err)

	store.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

	assert.NoError(t, svc.Logout(context.Background(), refresh))
	store.AssertExpectations(t)
}

package identity

import (
	"context"
	"testing"
	"time"

	"github.com/clubgate/backend/internal/domain/identity"
	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/clubgate/backend/internal/infrastructure/auth"
	"github.com/clubgate/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func newTestAuthService(users *MockUserRepository) *AuthService {
	jwtSvc := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "clubgate-test",
		MaxRefreshCount:        10,
	})
	return NewAuthService(users, jwtSvc, zap.NewNop())
}

func newTestUser(t *testing.T) *identity.User {
	t.Helper()
	u, err := identity.NewUser("reception1", "Front Desk", "", "letmein-2026", identity.RoleReception)
	require.NoError(t, err)
	return u
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		users := new(MockUserRepository)
		user := newTestUser(t)
		users.On("FindByUsername", ctx, "reception1").Return(user, nil)
		users.On("Save", ctx, user).Return(nil)

		svc := newTestAuthService(users)
		resp, err := svc.Login(ctx, LoginRequest{Username: "reception1", Password: "letmein-2026"})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.Tokens.AccessToken)
		assert.Equal(t, "reception", resp.User.Role)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		user := newTestUser(t)
		users.On("FindByUsername", ctx, "reception1").Return(user, nil)

		svc := newTestAuthService(users)
		_, err := svc.Login(ctx, LoginRequest{Username: "reception1", Password: "wrong"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})

	t.Run("unknown user gets the same error", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByUsername", ctx, "ghost").Return(nil, shared.ErrNotFound)

		svc := newTestAuthService(users)
		_, err := svc.Login(ctx, LoginRequest{Username: "ghost", Password: "whatever"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})

	t.Run("disabled account", func(t *testing.T) {
		users := new(MockUserRepository)
		user := newTestUser(t)
		user.Deactivate()
		users.On("FindByUsername", ctx, "reception1").Return(user, nil)

		svc := newTestAuthService(users)
		_, err := svc.Login(ctx, LoginRequest{Username: "reception1", Password: "letmein-2026"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("valid refresh token", func(t *testing.T) {
		users := new(MockUserRepository)
		user := newTestUser(t)
		users.On("FindByUsername", ctx, "reception1").Return(user, nil)
		users.On("Save", ctx, user).Return(nil)
		users.On("FindByID", ctx, user.ID).Return(user, nil)

		svc := newTestAuthService(users)
		login, err := svc.Login(ctx, LoginRequest{Username: "reception1", Password: "letmein-2026"})
		require.NoError(t, err)

		pair, err := svc.Refresh(ctx, RefreshRequest{RefreshToken: login.Tokens.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := newTestAuthService(new(MockUserRepository))
		_, err := svc.Refresh(ctx, RefreshRequest{RefreshToken: "garbage"})
		require.Error(t, err)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("successful change", func(t *testing.T) {
		users := new(MockUserRepository)
		user := newTestUser(t)
		users.On("FindByID", ctx, user.ID).Return(user, nil)
		users.On("Save", ctx, user).Return(nil)

		svc := newTestAuthService(users)
		err := svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{
			CurrentPassword: "letmein-2026",
			NewPassword:     "replacement-pass",
		})
		require.NoError(t, err)
		assert.True(t, user.CheckPassword("replacement-pass"))
	})

	t.Run("wrong current password", func(t *testing.T) {
		users := new(MockUserRepository)
		user := newTestUser(t)
		users.On("FindByID", ctx, user.ID).Return(user, nil)

		svc := newTestAuthService(users)
		err := svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "replacement-pass",
		})
		require.Error(t, err)
	})
}

func TestAuthService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a user", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByUsername", ctx, "lawyer1").Return(nil, shared.ErrNotFound)
		users.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		svc := newTestAuthService(users)
		resp, err := svc.CreateUser(ctx, CreateUserRequest{
			Username: "lawyer1",
			Password: "letmein-2026",
			Role:     "lawyer",
		})
		require.NoError(t, err)
		assert.Equal(t, "lawyer", resp.Role)
		assert.True(t, resp.Active)
	})

	t.Run("duplicate username", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByUsername", ctx, "reception1").Return(newTestUser(t), nil)

		svc := newTestAuthService(users)
		_, err := svc.CreateUser(ctx, CreateUserRequest{
			Username: "reception1",
			Password: "letmein-2026",
			Role:     "reception",
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

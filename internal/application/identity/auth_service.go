package identity

import (
	"context"
	"time"

	"github.com/clubgate/backend/internal/domain/identity"
	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/clubgate/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles staff authentication and account management
type AuthService struct {
	users  identity.UserRepository
	jwt    *auth.JWTService
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users identity.UserRepository, jwt *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		jwt:    jwt,
		logger: logger,
	}
}

// Login verifies credentials and issues a token pair. Failed lookups and
// wrong passwords return the same error so usernames cannot be probed.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")
		}
		return nil, err
	}

	if !user.Active {
		return nil, shared.NewDomainError("FORBIDDEN", "Account is disabled")
	}
	if !user.CheckPassword(req.Password) {
		s.logger.Warn("failed login attempt", zap.String("username", req.Username))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")
	}

	tokens, err := s.jwt.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	user.RecordLogin(time.Now())
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return &LoginResponse{
		User:   ToUserResponse(user),
		Tokens: tokens,
	}, nil
}

// Refresh exchanges a valid refresh token for a new pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*auth.TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}
	if !user.Active {
		return nil, shared.NewDomainError("FORBIDDEN", "Account is disabled")
	}

	return s.jwt.RefreshTokenPair(req.RefreshToken, user.Username, string(user.Role))
}

// ChangePassword replaces the caller's password after verifying the current
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	user.IncrementVersion()

	return s.users.Save(ctx, user)
}

// CreateUser provisions a staff account. Usernames are unique.
func (s *AuthService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	existing, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is taken")
	}

	user, err := identity.NewUser(req.Username, req.DisplayName, req.Phone, req.Password, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	resp := ToUserResponse(user)
	return &resp, nil
}

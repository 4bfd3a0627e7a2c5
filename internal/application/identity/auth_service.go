package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/spicetrade/backend/internal/domain/identity"
	"github.com/spicetrade/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// IssuedToken is a signed access token with its expiry
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenIssuer signs access tokens for authenticated users.
// The session ID travels in the token claims and scopes
// per-session state such as reminder dismissals.
type TokenIssuer interface {
	Issue(user *identity.User, sessionID string) (*IssuedToken, error)
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo identity.UserRepository
	tokens   TokenIssuer
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, tokens TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Login authenticates a user and returns a signed token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Warn("login attempt for unknown user", zap.String("username", req.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	if !user.CanLogin() {
		if user.Status == identity.UserStatusLocked {
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Ask the owner to unlock it")
		}
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is not active")
	}

	if !user.VerifyPassword(req.Password) {
		user.RecordFailedLogin()
		if err := s.userRepo.Save(ctx, user); err != nil {
			s.logger.Error("failed to record login failure", zap.Error(err))
		}
		if user.Status == identity.UserStatusLocked {
			s.logger.Warn("account locked after repeated failures", zap.String("username", user.Username))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed attempts. Account has been locked")
		}
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	sessionID := uuid.New().String()
	issued, err := s.tokens.Issue(user, sessionID)
	if err != nil {
		s.logger.Error("failed to issue token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to issue authentication token")
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// The login itself succeeded, keep going
		s.logger.Error("failed to record login", zap.Error(err))
	}

	s.logger.Info("user logged in", zap.String("username", user.Username), zap.String("session_id", sessionID))

	return &LoginResponse{
		AccessToken: issued.Token,
		TokenType:   "Bearer",
		ExpiresAt:   issued.ExpiresAt,
		SessionID:   sessionID,
		User:        ToUserResponse(user),
	}, nil
}

// GetCurrentUser retrieves the logged-in user's profile
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// ChangePassword changes the logged-in user's own password
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("password changed", zap.String("username", user.Username))
	return nil
}

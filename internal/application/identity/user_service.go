package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/spicetrade/backend/internal/domain/identity"
	"github.com/spicetrade/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService handles user account management.
// All operations here are owner-only and gated at the HTTP layer.
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create creates a new user account
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_USERNAME", "A user with this username already exists")
	}

	user, err := identity.NewUser(req.Username, req.Password, identity.UserRole(req.Role))
	if err != nil {
		return nil, err
	}
	if req.Email != "" {
		if err := user.SetEmail(req.Email); err != nil {
			return nil, err
		}
	}
	if req.DisplayName != "" {
		if err := user.SetDisplayName(req.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.String("username", user.Username), zap.String("role", string(user.Role)))

	response := ToUserResponse(user)
	return &response, nil
}

// List retrieves all user accounts
func (s *UserService) List(ctx context.Context) ([]UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses, nil
}

// Update updates a user's profile. Only the provided fields change.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		if err := user.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.DisplayName != nil {
		if err := user.SetDisplayName(*req.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// ResetPassword sets a new password for a user without their old one
func (s *UserService) ResetPassword(ctx context.Context, id uuid.UUID, req ResetPasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := user.ResetPassword(req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("password reset", zap.String("username", user.Username))
	return nil
}

// Unlock unlocks an account locked by failed logins
func (s *UserService) Unlock(ctx context.Context, id uuid.UUID) error {
	return s.changeStatus(ctx, id, (*identity.User).Unlock)
}

// Activate reactivates a deactivated account
func (s *UserService) Activate(ctx context.Context, id uuid.UUID) error {
	return s.changeStatus(ctx, id, (*identity.User).Activate)
}

// Deactivate deactivates a user account
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.changeStatus(ctx, id, (*identity.User).Deactivate)
}

func (s *UserService) changeStatus(ctx context.Context, id uuid.UUID, change func(*identity.User) error) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := change(user); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}

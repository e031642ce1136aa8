package usecase

import (
	"context"
	"fmt"
	"time"

	"pricelist-manager/internal/data/entity"
	"pricelist-manager/internal/data/repository"
	"pricelist-manager/internal/dto/request"
	"pricelist-manager/internal/dto/response"
	"pricelist-manager/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*response.UserResponse, error)
	List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	Update(ctx context.Context, id uuid.UUID, req *request.UserUpdateRequest) (*response.UserResponse, error)
	UpdateRole(ctx context.Context, id uuid.UUID, req *request.UserRoleRequest) error
	ChangePassword(ctx context.Context, id uuid.UUID, req *request.ChangePasswordRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log,
	}
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get user", zap.Error(err), zap.String("user_id", id.String()))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := s.repo.User.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users")
	}

	total, err := s.repo.User.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count users", zap.Error(err))
		return nil, fmt.Errorf("failed to count users")
	}

	return response.NewPaginatedResponse(response.UsersToResponse(users), req.Page, req.Limit(), total), nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req *request.UserUpdateRequest) (*response.UserResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("User update validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Load user
	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load user for update", zap.Error(err), zap.String("user_id", id.String()))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	// 3. Apply changes
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != user.Email {
		existing, err := s.repo.User.FindByEmail(ctx, *req.Email)
		if err != nil {
			s.log.Error("Failed to check email", zap.Error(err), zap.String("email", *req.Email))
			return nil, fmt.Errorf("failed to check email")
		}
		if existing != nil {
			return nil, fmt.Errorf("email already registered")
		}
		user.Email = *req.Email
	}
	if req.Phone != nil {
		user.Phone = req.Phone
		user.IsPhoneVerified = false
	}
	if req.LevelID != nil {
		levelID, err := uuid.Parse(*req.LevelID)
		if err != nil {
			return nil, fmt.Errorf("invalid level id")
		}
		level, err := s.repo.UserLevel.FindByID(ctx, levelID)
		if err != nil {
			s.log.Error("Failed to check user level", zap.Error(err), zap.String("level_id", *req.LevelID))
			return nil, fmt.Errorf("failed to check level")
		}
		if level == nil {
			return nil, fmt.Errorf("user level not found")
		}
		user.LevelID = &level.ID
		user.DiscountPercentage = level.DiscountPercentage
	}
	user.UpdatedAt = time.Now()

	// 4. Persist
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", id.String()))
		return nil, fmt.Errorf("failed to update user")
	}

	s.log.Info("User updated", zap.String("user_id", id.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateRole(ctx context.Context, id uuid.UUID, req *request.UserRoleRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Role update validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load user for role update", zap.Error(err), zap.String("user_id", id.String()))
		return fmt.Errorf("failed to find user")
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}

	if err := s.repo.User.UpdateRole(ctx, id, entity.UserRole(req.Role)); err != nil {
		s.log.Error("Failed to update role", zap.Error(err), zap.String("user_id", id.String()))
		return fmt.Errorf("failed to update role")
	}

	s.log.Info("User role updated",
		zap.String("user_id", id.String()),
		zap.String("role", req.Role))
	return nil
}

func (s *userService) ChangePassword(ctx context.Context, id uuid.UUID, req *request.ChangePasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Change password validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load user for password change", zap.Error(err), zap.String("user_id", id.String()))
		return fmt.Errorf("failed to find user")
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		s.log.Warn("Wrong current password", zap.String("user_id", id.String()))
		return fmt.Errorf("invalid credentials")
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash new password", zap.Error(err))
		return fmt.Errorf("failed to process password")
	}

	if err := s.repo.User.UpdatePassword(ctx, id, hashed); err != nil {
		s.log.Error("Failed to update password", zap.Error(err), zap.String("user_id", id.String()))
		return fmt.Errorf("failed to update password")
	}

	s.log.Info("Password changed", zap.String("user_id", id.String()))
	return nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load user for delete", zap.Error(err), zap.String("user_id", id.String()))
		return fmt.Errorf("failed to find user")
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}
	if user.Role == entity.RoleAdmin {
		return fmt.Errorf("admin accounts cannot be deleted")
	}

	if err := s.repo.User.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete user", zap.Error(err), zap.String("user_id", id.String()))
		return fmt.Errorf("failed to delete user")
	}

	return nil
}

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

type UserLevelService interface {
	Create(ctx context.Context, req *request.UserLevelRequest) (*response.UserLevelResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*response.UserLevelResponse, error)
	List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserLevelResponse], error)
	Update(ctx context.Context, id uuid.UUID, req *request.UserLevelUpdateRequest) (*response.UserLevelResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userLevelService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserLevelService(repo *repository.Repository, log *zap.Logger) UserLevelService {
	return &userLevelService{
		repo: repo,
		log:  log,
	}
}

func (s *userLevelService) Create(ctx context.Context, req *request.UserLevelRequest) (*response.UserLevelResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Level create validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.UserLevel.FindByName(ctx, req.Name)
	if err != nil {
		s.log.Error("Failed to check level name", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("failed to check level name")
	}
	if existing != nil {
		return nil, fmt.Errorf("level name already exists")
	}

	now := time.Now()
	level := &entity.UserLevel{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:               req.Name,
		DiscountPercentage: req.DiscountPercentage,
		Description:        req.Description,
	}

	if err := s.repo.UserLevel.Create(ctx, level); err != nil {
		s.log.Error("Failed to create level", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("failed to create level")
	}

	s.log.Info("User level created",
		zap.String("level_id", level.ID.String()),
		zap.String("name", level.Name))

	resp := response.UserLevelToResponse(level)
	return &resp, nil
}

func (s *userLevelService) GetByID(ctx context.Context, id uuid.UUID) (*response.UserLevelResponse, error) {
	level, err := s.repo.UserLevel.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get level", zap.Error(err), zap.String("level_id", id.String()))
		return nil, fmt.Errorf("failed to find level")
	}
	if level == nil {
		return nil, fmt.Errorf("level not found")
	}

	resp := response.UserLevelToResponse(level)
	return &resp, nil
}

func (s *userLevelService) List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserLevelResponse], error) {
	levels, err := s.repo.UserLevel.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list levels", zap.Error(err))
		return nil, fmt.Errorf("failed to list levels")
	}

	total, err := s.repo.UserLevel.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count levels", zap.Error(err))
		return nil, fmt.Errorf("failed to count levels")
	}

	return response.NewPaginatedResponse(response.UserLevelsToResponse(levels), req.Page, req.Limit(), total), nil
}

// Update persists the level and, when the discount changed, refreshes the
// denormalized copy on every member of the level.
func (s *userLevelService) Update(ctx context.Context, id uuid.UUID, req *request.UserLevelUpdateRequest) (*response.UserLevelResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Level update validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	level, err := s.repo.UserLevel.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load level for update", zap.Error(err), zap.String("level_id", id.String()))
		return nil, fmt.Errorf("failed to find level")
	}
	if level == nil {
		return nil, fmt.Errorf("level not found")
	}

	discountChanged := false
	if req.Name != nil && *req.Name != level.Name {
		existing, err := s.repo.UserLevel.FindByName(ctx, *req.Name)
		if err != nil {
			s.log.Error("Failed to check level name", zap.Error(err), zap.String("name", *req.Name))
			return nil, fmt.Errorf("failed to check level name")
		}
		if existing != nil {
			return nil, fmt.Errorf("level name already exists")
		}
		level.Name = *req.Name
	}
	if req.DiscountPercentage != nil && *req.DiscountPercentage != level.DiscountPercentage {
		level.DiscountPercentage = *req.DiscountPercentage
		discountChanged = true
	}
	if req.Description != nil {
		level.Description = req.Description
	}
	level.UpdatedAt = time.Now()

	if err := s.repo.UserLevel.Update(ctx, level); err != nil {
		s.log.Error("Failed to update level", zap.Error(err), zap.String("level_id", id.String()))
		return nil, fmt.Errorf("failed to update level")
	}

	if discountChanged {
		if err := s.repo.User.SyncDiscountByLevelID(ctx, level.ID, level.DiscountPercentage); err != nil {
			s.log.Error("Failed to propagate discount to users",
				zap.Error(err), zap.String("level_id", id.String()))
			return nil, fmt.Errorf("failed to propagate discount")
		}
	}

	s.log.Info("User level updated",
		zap.String("level_id", id.String()),
		zap.Bool("discount_changed", discountChanged))

	resp := response.UserLevelToResponse(level)
	return &resp, nil
}

func (s *userLevelService) Delete(ctx context.Context, id uuid.UUID) error {
	level, err := s.repo.UserLevel.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load level for delete", zap.Error(err), zap.String("level_id", id.String()))
		return fmt.Errorf("failed to find level")
	}
	if level == nil {
		return fmt.Errorf("level not found")
	}

	members, err := s.repo.User.CountByLevelID(ctx, id)
	if err != nil {
		s.log.Error("Failed to count level members", zap.Error(err), zap.String("level_id", id.String()))
		return fmt.Errorf("failed to check level members")
	}
	if members > 0 {
		return fmt.Errorf("level has assigned users")
	}

	if err := s.repo.UserLevel.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete level", zap.Error(err), zap.String("level_id", id.String()))
		return fmt.Errorf("failed to delete level")
	}

	return nil
}

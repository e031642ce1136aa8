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

type CategoryService interface {
	Create(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*response.CategoryResponse, error)
	List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error)
	Update(ctx context.Context, id uuid.UUID, req *request.CategoryUpdateRequest) (*response.CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCategoryService(repo *repository.Repository, log *zap.Logger) CategoryService {
	return &categoryService{
		repo: repo,
		log:  log,
	}
}

func (s *categoryService) Create(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Category create validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Category.FindByName(ctx, req.Name)
	if err != nil {
		s.log.Error("Failed to check category name", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("failed to check category name")
	}
	if existing != nil {
		return nil, fmt.Errorf("category name already exists")
	}

	now := time.Now()
	category := &entity.Category{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.repo.Category.Create(ctx, category); err != nil {
		s.log.Error("Failed to create category", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("failed to create category")
	}

	s.log.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("name", category.Name))

	resp := response.CategoryToResponse(category, 0)
	return &resp, nil
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*response.CategoryResponse, error) {
	category, err := s.repo.Category.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get category", zap.Error(err), zap.String("category_id", id.String()))
		return nil, fmt.Errorf("failed to find category")
	}
	if category == nil {
		return nil, fmt.Errorf("category not found")
	}

	count, err := s.repo.Product.CountByCategoryID(ctx, id)
	if err != nil {
		s.log.Error("Failed to count category products", zap.Error(err), zap.String("category_id", id.String()))
		return nil, fmt.Errorf("failed to count category products")
	}

	resp := response.CategoryToResponse(category, count)
	return &resp, nil
}

func (s *categoryService) List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error) {
	categories, err := s.repo.Category.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("failed to list categories")
	}

	total, err := s.repo.Category.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count categories", zap.Error(err))
		return nil, fmt.Errorf("failed to count categories")
	}

	responses := make([]response.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		count, err := s.repo.Product.CountByCategoryID(ctx, category.ID)
		if err != nil {
			s.log.Error("Failed to count category products",
				zap.Error(err), zap.String("category_id", category.ID.String()))
			return nil, fmt.Errorf("failed to count category products")
		}
		responses = append(responses, response.CategoryToResponse(category, count))
	}

	return response.NewPaginatedResponse(responses, req.Page, req.Limit(), total), nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req *request.CategoryUpdateRequest) (*response.CategoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Category update validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	category, err := s.repo.Category.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load category for update", zap.Error(err), zap.String("category_id", id.String()))
		return nil, fmt.Errorf("failed to find category")
	}
	if category == nil {
		return nil, fmt.Errorf("category not found")
	}

	if req.Name != nil && *req.Name != category.Name {
		existing, err := s.repo.Category.FindByName(ctx, *req.Name)
		if err != nil {
			s.log.Error("Failed to check category name", zap.Error(err), zap.String("name", *req.Name))
			return nil, fmt.Errorf("failed to check category name")
		}
		if existing != nil {
			return nil, fmt.Errorf("category name already exists")
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = req.Description
	}
	category.UpdatedAt = time.Now()

	if err := s.repo.Category.Update(ctx, category); err != nil {
		s.log.Error("Failed to update category", zap.Error(err), zap.String("category_id", id.String()))
		return nil, fmt.Errorf("failed to update category")
	}

	count, err := s.repo.Product.CountByCategoryID(ctx, id)
	if err != nil {
		s.log.Error("Failed to count category products", zap.Error(err), zap.String("category_id", id.String()))
		return nil, fmt.Errorf("failed to count category products")
	}

	resp := response.CategoryToResponse(category, count)
	return &resp, nil
}

// Delete refuses to remove a category that still has products so listings
// never point at a missing category.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.repo.Category.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load category for delete", zap.Error(err), zap.String("category_id", id.String()))
		return fmt.Errorf("failed to find category")
	}
	if category == nil {
		return fmt.Errorf("category not found")
	}

	products, err := s.repo.Product.CountByCategoryID(ctx, id)
	if err != nil {
		s.log.Error("Failed to count category products", zap.Error(err), zap.String("category_id", id.String()))
		return fmt.Errorf("failed to check category products")
	}
	if products > 0 {
		return fmt.Errorf("category has products")
	}

	if err := s.repo.Category.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete category", zap.Error(err), zap.String("category_id", id.String()))
		return fmt.Errorf("failed to delete category")
	}

	return nil
}

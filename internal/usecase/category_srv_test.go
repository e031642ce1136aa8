package usecase

import (
	"context"
	"testing"

	"pricelist-manager/internal/data/entity"
	"pricelist-manager/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCreate(t *testing.T) {
	repo, _, _, categoryRepo, _, _, _, _ := newTestRepository()

	var created *entity.Category
	categoryRepo.CreateFn = func(ctx context.Context, category *entity.Category) error {
		created = category
		return nil
	}

	svc := NewCategoryService(repo, testLogger())

	resp, err := svc.Create(context.Background(), &request.CategoryRequest{Name: "لوازم برقی"})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "لوازم برقی", created.Name)
	assert.Equal(t, created.ID.String(), resp.ID)
}

func TestCategoryCreateDuplicateName(t *testing.T) {
	repo, _, _, categoryRepo, _, _, _, _ := newTestRepository()

	categoryRepo.FindByNameFn = func(ctx context.Context, name string) (*entity.Category, error) {
		return &entity.Category{Name: name}, nil
	}

	svc := NewCategoryService(repo, testLogger())

	_, err := svc.Create(context.Background(), &request.CategoryRequest{Name: "ابزار دستی"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category name already exists")
}

func TestCategoryGetByIDIncludesProductCount(t *testing.T) {
	repo, _, _, categoryRepo, productRepo, _, _, _ := newTestRepository()

	categoryRepo.FindByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
		return &entity.Category{Base: entity.Base{ID: id}, Name: "لوازم برقی"}, nil
	}
	productRepo.CountByCategoryIDFn = func(ctx context.Context, categoryID uuid.UUID) (int64, error) {
		return 7, nil
	}

	svc := NewCategoryService(repo, testLogger())

	resp, err := svc.GetByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ProductCount)
}

func TestCategoryDeleteWithProducts(t *testing.T) {
	repo, _, _, categoryRepo, productRepo, _, _, _ := newTestRepository()

	categoryRepo.FindByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
		return &entity.Category{Base: entity.Base{ID: id}, Name: "ابزار دستی"}, nil
	}
	productRepo.CountByCategoryIDFn = func(ctx context.Context, categoryID uuid.UUID) (int64, error) {
		return 4, nil
	}

	deleted := false
	categoryRepo.DeleteFn = func(ctx context.Context, id uuid.UUID) error {
		deleted = true
		return nil
	}

	svc := NewCategoryService(repo, testLogger())

	err := svc.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category has products")
	assert.False(t, deleted)
}

func TestCategoryDeleteEmpty(t *testing.T) {
	repo, _, _, categoryRepo, _, _, _, _ := newTestRepository()

	categoryRepo.FindByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
		return &entity.Category{Base: entity.Base{ID: id}, Name: "ابزار دستی"}, nil
	}

	deleted := false
	categoryRepo.DeleteFn = func(ctx context.Context, id uuid.UUID) error {
		deleted = true
		return nil
	}

	svc := NewCategoryService(repo, testLogger())

	require.NoError(t, svc.Delete(context.Background(), uuid.New()))
	assert.True(t, deleted)
}

func TestCategoryUpdateNotFound(t *testing.T) {
	repo, _, _, _, _, _, _, _ := newTestRepository()
	svc := NewCategoryService(repo, testLogger())

	name := "جدید"
	_, err := svc.Update(context.Background(), uuid.New(), &request.CategoryUpdateRequest{Name: &name})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category not found")
}

package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"pricelist-manager/internal/data/entity"
	"pricelist-manager/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCreateDuplicateSerial(t *testing.T) {
	repo, _, _, _, productRepo, _, _, _ := newTestRepository()

	productRepo.FindBySerialNumberFn = func(ctx context.Context, serial string) (*entity.Product, error) {
		return &entity.Product{SerialNumber: serial}, nil
	}

	svc := NewProductService(repo, testConfig(t.TempDir()), testLogger())

	_, err := svc.Create(context.Background(), &request.ProductRequest{
		Name:         "دریل برقی",
		SerialNumber: "SN-001",
		Price:        1500000,
		Stock:        10,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serial number already exists")
}

func TestProductCreateUnknownCategory(t *testing.T) {
	repo, _, _, _, _, _, _, _ := newTestRepository()
	svc := NewProductService(repo, testConfig(t.TempDir()), testLogger())

	categoryID := uuid.NewString()
	_, err := svc.Create(context.Background(), &request.ProductRequest{
		Name:         "دریل برقی",
		SerialNumber: "SN-001",
		Price:        1500000,
		Stock:        10,
		CategoryID:   &categoryID,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category not found")
}

func TestProductGetByIDAppliesViewerDiscount(t *testing.T) {
	repo, userRepo, _, _, productRepo, _, _, _ := newTestRepository()

	viewerID := uuid.New()
	productRepo.FindByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
		return &entity.Product{
			Base:     entity.Base{ID: id},
			Name:     "دریل برقی",
			Price:    1000,
			Discount: 10,
			Stock:    5,
		}, nil
	}
	userRepo.FindByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.User, error) {
		return &entity.User{
			Base:               entity.Base{ID: id},
			DiscountPercentage: 20,
		}, nil
	}

	svc := NewProductService(repo, testConfig(t.TempDir()), testLogger())

	resp, err := svc.GetByID(context.Background(), uuid.New(), viewerID)
	require.NoError(t, err)

	// 1000 -> 900 after product discount -> 720 after level discount
	assert.Equal(t, 1000.0, resp.Price)
	assert.Equal(t, 720.0, resp.FinalPrice)
}

func TestProductGetByIDAnonymousViewer(t *testing.T) {
	repo, userRepo, _, _, productRepo, _, _, _ := newTestRepository()

	productRepo.FindByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
		return &entity.Product{
			Base:     entity.Base{ID: id},
			Price:    1000,
			Discount: 10,
		}, nil
	}

	lookedUp := false
	userRepo.FindByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.User, error) {
		lookedUp = true
		return nil, nil
	}

	svc := NewProductService(repo, testConfig(t.TempDir()), testLogger())

	resp, err := svc.GetByID(context.Background(), uuid.New(), uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, 900.0, resp.FinalPrice)
	assert.False(t, lookedUp, "anonymous viewers skip the user lookup")
}

func TestProductListImages(t *testing.T) {
	repo, _, _, _, productRepo, imageRepo, _, _ := newTestRepository()

	productRepo.FindByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
		return &entity.Product{Base: entity.Base{ID: id}}, nil
	}
	imageRepo.FindByProductIDFn = func(ctx context.Context, productID uuid.UUID) ([]*entity.ProductImage, error) {
		return []*entity.ProductImage{
			{URL: "/uploads/products/a.jpg", IsPrimary: true, SortOrder: 0},
			{URL: "/uploads/products/b.jpg", SortOrder: 1},
		}, nil
	}

	svc := NewProductService(repo, testConfig(t.TempDir()), testLogger())

	images, err := svc.ListImages(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.True(t, images[0].IsPrimary)
	assert.Equal(t, "/uploads/products/b.jpg", images[1].URL)
}

func TestProductListImagesUnknownProduct(t *testing.T) {
	repo, _, _, _, _, _, _, _ := newTestRepository()
	svc := NewProductService(repo, testConfig(t.TempDir()), testLogger())

	_, err := svc.ListImages(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product not found")
}

func TestProductAddImageFirstBecomesPrimary(t *testing.T) {
	repo, _, _, _, productRepo, imageRepo, _, _ := newTestRepository()

	dir := t.TempDir()
	productID := uuid.New()
	productRepo.FindByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
		return &entity.Product{Base: entity.Base{ID: id}}, nil
	}

	cleared := false
	imageRepo.ClearPrimaryFn = func(ctx context.Context, pid uuid.UUID) error {
		cleared = true
		return nil
	}
	var created *entity.ProductImage
	imageRepo.CreateFn = func(ctx context.Context, image *entity.ProductImage) error {
		created = image
		return nil
	}

	svc := NewProductService(repo, testConfig(dir), testLogger())

	resp, err := svc.AddImage(context.Background(), productID, []byte("png-bytes"), ".png",
		&request.ImageUploadRequest{Alt: "نمای جلو"})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.True(t, created.IsPrimary, "first image becomes primary")
	assert.True(t, cleared)
	assert.Equal(t, productID, created.ProductID)
	assert.True(t, resp.IsPrimary)

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(created.URL)))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestProductAddImageSecondStaysSecondary(t *testing.T) {
	repo, _, _, _, productRepo, imageRepo, _, _ := newTestRepository()

	productRepo.FindByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
		return &entity.Product{Base: entity.Base{ID: id}}, nil
	}
	imageRepo.FindByProductIDFn = func(ctx context.Context, productID uuid.UUID) ([]*entity.ProductImage, error) {
		return []*entity.ProductImage{{IsPrimary: true}}, nil
	}

	cleared := false
	imageRepo.ClearPrimaryFn = func(ctx context.Context, pid uuid.UUID) error {
		cleared = true
		return nil
	}
	var created *entity.ProductImage
	imageRepo.CreateFn = func(ctx context.Context, image *entity.ProductImage) error {
		created = image
		return nil
	}

	svc := NewProductService(repo, testConfig(t.TempDir()), testLogger())

	_, err := svc.AddImage(context.Background(), uuid.New(), []byte("x"), ".jpg",
		&request.ImageUploadRequest{})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.False(t, created.IsPrimary)
	assert.False(t, cleared)
}

func TestProductSetPrimaryImage(t *testing.T) {
	repo, _, _, _, _, imageRepo, _, _ := newTestRepository()

	productID := uuid.New()
	imageID := uuid.New()
	imageRepo.FindByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.ProductImage, error) {
		return &entity.ProductImage{
			BaseSimple: entity.BaseSimple{ID: id},
			ProductID:  productID,
		}, nil
	}

	cleared := false
	imageRepo.ClearPrimaryFn = func(ctx context.Context, pid uuid.UUID) error {
		cleared = true
		assert.Equal(t, productID, pid)
		return nil
	}
	var promoted uuid.UUID
	imageRepo.SetPrimaryFn = func(ctx context.Context, id uuid.UUID) error {
		promoted = id
		return nil
	}

	svc := NewProductService(repo, testConfig(t.TempDir()), testLogger())

	require.NoError(t, svc.SetPrimaryImage(context.Background(), productID, imageID))
	assert.True(t, cleared)
	assert.Equal(t, imageID, promoted)
}

func TestProductSetPrimaryImageWrongProduct(t *testing.T) {
	repo, _, _, _, _, imageRepo, _, _ := newTestRepository()

	imageRepo.FindByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.ProductImage, error) {
		return &entity.ProductImage{
			BaseSimple: entity.BaseSimple{ID: id},
			ProductID:  uuid.New(),
		}, nil
	}

	svc := NewProductService(repo, testConfig(t.TempDir()), testLogger())

	err := svc.SetPrimaryImage(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image not found")
}

func TestProductDeleteRemovesImages(t *testing.T) {
	repo, _, _, _, productRepo, imageRepo, _, _ := newTestRepository()

	productRepo.FindByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
		return &entity.Product{Base: entity.Base{ID: id}}, nil
	}

	imagesGone := false
	imageRepo.DeleteByProductIDFn = func(ctx context.Context, productID uuid.UUID) error {
		imagesGone = true
		return nil
	}
	productGone := false
	productRepo.DeleteFn = func(ctx context.Context, id uuid.UUID) error {
		productGone = true
		return nil
	}

	svc := NewProductService(repo, testConfig(t.TempDir()), testLogger())

	require.NoError(t, svc.Delete(context.Background(), uuid.New()))
	assert.True(t, imagesGone)
	assert.True(t, productGone)
}

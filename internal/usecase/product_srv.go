package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pricelist-manager/internal/data/entity"
	"pricelist-manager/internal/data/repository"
	"pricelist-manager/internal/dto/request"
	"pricelist-manager/internal/dto/response"
	"pricelist-manager/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductService interface {
	Create(ctx context.Context, req *request.ProductRequest) (*response.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID, viewerID uuid.UUID) (*response.ProductResponse, error)
	List(ctx context.Context, req *request.ProductListRequest, viewerID uuid.UUID) (*response.PaginatedResponse[response.ProductResponse], error)
	Update(ctx context.Context, id uuid.UUID, req *request.ProductUpdateRequest) (*response.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListImages(ctx context.Context, productID uuid.UUID) ([]response.ProductImageResponse, error)
	AddImage(ctx context.Context, productID uuid.UUID, data []byte, ext string, req *request.ImageUploadRequest) (*response.ProductImageResponse, error)
	SetPrimaryImage(ctx context.Context, productID, imageID uuid.UUID) error
	DeleteImage(ctx context.Context, productID, imageID uuid.UUID) error
}

type productService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewProductService(repo *repository.Repository, config *utils.Config, log *zap.Logger) ProductService {
	return &productService{
		repo:   repo,
		config: config,
		log:    log,
	}
}

// discountFor resolves the viewer's level discount. Anonymous viewers
// (uuid.Nil) see undiscounted prices.
func (s *productService) discountFor(ctx context.Context, viewerID uuid.UUID) float64 {
	if viewerID == uuid.Nil {
		return 0
	}

	user, err := s.repo.User.FindByID(ctx, viewerID)
	if err != nil || user == nil {
		if err != nil {
			s.log.Warn("Failed to resolve viewer discount",
				zap.Error(err), zap.String("user_id", viewerID.String()))
		}
		return 0
	}

	return user.DiscountPercentage
}

func (s *productService) resolveCategory(ctx context.Context, categoryID *string) (*uuid.UUID, error) {
	if categoryID == nil {
		return nil, nil
	}

	id, err := uuid.Parse(*categoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category id")
	}

	category, err := s.repo.Category.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to check category", zap.Error(err), zap.String("category_id", *categoryID))
		return nil, fmt.Errorf("failed to check category")
	}
	if category == nil {
		return nil, fmt.Errorf("category not found")
	}

	return &category.ID, nil
}

func (s *productService) Create(ctx context.Context, req *request.ProductRequest) (*response.ProductResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Product create validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Serial numbers are unique across the catalog
	existing, err := s.repo.Product.FindBySerialNumber(ctx, req.SerialNumber)
	if err != nil {
		s.log.Error("Failed to check serial number", zap.Error(err), zap.String("serial_number", req.SerialNumber))
		return nil, fmt.Errorf("failed to check serial number")
	}
	if existing != nil {
		return nil, fmt.Errorf("serial number already exists")
	}

	// 3. Resolve category if given
	categoryID, err := s.resolveCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	// 4. Create product
	now := time.Now()
	product := &entity.Product{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		SerialNumber: req.SerialNumber,
		Price:        req.Price,
		Stock:        req.Stock,
		Discount:     req.Discount,
		Description:  req.Description,
		CategoryID:   categoryID,
	}

	if err := s.repo.Product.Create(ctx, product); err != nil {
		s.log.Error("Failed to create product", zap.Error(err), zap.String("serial_number", req.SerialNumber))
		return nil, fmt.Errorf("failed to create product")
	}

	s.log.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("serial_number", product.SerialNumber))

	resp := response.ProductToResponse(product, nil, 0)
	return &resp, nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID, viewerID uuid.UUID) (*response.ProductResponse, error) {
	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get product", zap.Error(err), zap.String("product_id", id.String()))
		return nil, fmt.Errorf("failed to find product")
	}
	if product == nil {
		return nil, fmt.Errorf("product not found")
	}

	images, err := s.repo.Image.FindByProductID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load product images", zap.Error(err), zap.String("product_id", id.String()))
		return nil, fmt.Errorf("failed to load images")
	}

	resp := response.ProductToResponse(product, images, s.discountFor(ctx, viewerID))
	return &resp, nil
}

func (s *productService) List(ctx context.Context, req *request.ProductListRequest, viewerID uuid.UUID) (*response.PaginatedResponse[response.ProductResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Product list validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	filter := repository.ProductFilter{
		Search:   req.Search,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category id")
		}
		filter.CategoryID = &categoryID
	}

	products, err := s.repo.Product.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list products", zap.Error(err))
		return nil, fmt.Errorf("failed to list products")
	}

	total, err := s.repo.Product.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count products", zap.Error(err))
		return nil, fmt.Errorf("failed to count products")
	}

	userDiscount := s.discountFor(ctx, viewerID)
	responses := make([]response.ProductResponse, 0, len(products))
	for _, product := range products {
		images, err := s.repo.Image.FindByProductID(ctx, product.ID)
		if err != nil {
			s.log.Error("Failed to load product images",
				zap.Error(err), zap.String("product_id", product.ID.String()))
			return nil, fmt.Errorf("failed to load images")
		}
		responses = append(responses, response.ProductToResponse(product, images, userDiscount))
	}

	return response.NewPaginatedResponse(responses, req.Page, req.Limit(), total), nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req *request.ProductUpdateRequest) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Product update validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load product for update", zap.Error(err), zap.String("product_id", id.String()))
		return nil, fmt.Errorf("failed to find product")
	}
	if product == nil {
		return nil, fmt.Errorf("product not found")
	}

	if req.SerialNumber != nil && *req.SerialNumber != product.SerialNumber {
		existing, err := s.repo.Product.FindBySerialNumber(ctx, *req.SerialNumber)
		if err != nil {
			s.log.Error("Failed to check serial number", zap.Error(err), zap.String("serial_number", *req.SerialNumber))
			return nil, fmt.Errorf("failed to check serial number")
		}
		if existing != nil {
			return nil, fmt.Errorf("serial number already exists")
		}
		product.SerialNumber = *req.SerialNumber
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Discount != nil {
		product.Discount = *req.Discount
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.CategoryID != nil {
		categoryID, err := s.resolveCategory(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		product.CategoryID = categoryID
	}
	product.UpdatedAt = time.Now()

	if err := s.repo.Product.Update(ctx, product); err != nil {
		s.log.Error("Failed to update product", zap.Error(err), zap.String("product_id", id.String()))
		return nil, fmt.Errorf("failed to update product")
	}

	resp := response.ProductToResponse(product, nil, 0)
	return &resp, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load product for delete", zap.Error(err), zap.String("product_id", id.String()))
		return fmt.Errorf("failed to find product")
	}
	if product == nil {
		return fmt.Errorf("product not found")
	}

	if err := s.repo.Image.DeleteByProductID(ctx, id); err != nil {
		s.log.Error("Failed to delete product images", zap.Error(err), zap.String("product_id", id.String()))
		return fmt.Errorf("failed to delete images")
	}

	if err := s.repo.Product.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete product", zap.Error(err), zap.String("product_id", id.String()))
		return fmt.Errorf("failed to delete product")
	}

	return nil
}

func (s *productService) ListImages(ctx context.Context, productID uuid.UUID) ([]response.ProductImageResponse, error) {
	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		s.log.Error("Failed to load product", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("failed to find product")
	}
	if product == nil {
		return nil, fmt.Errorf("product not found")
	}

	images, err := s.repo.Image.FindByProductID(ctx, productID)
	if err != nil {
		s.log.Error("Failed to load product images", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("failed to load images")
	}

	return response.ImagesToResponse(images), nil
}

// AddImage writes the file under the upload directory and records it. The
// first image of a product becomes primary automatically.
func (s *productService) AddImage(ctx context.Context, productID uuid.UUID, data []byte, ext string, req *request.ImageUploadRequest) (*response.ProductImageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Image upload validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		s.log.Error("Failed to load product for image upload",
			zap.Error(err), zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("failed to find product")
	}
	if product == nil {
		return nil, fmt.Errorf("product not found")
	}

	existing, err := s.repo.Image.FindByProductID(ctx, productID)
	if err != nil {
		s.log.Error("Failed to load existing images",
			zap.Error(err), zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("failed to load images")
	}

	imageID := uuid.New()
	filename := fmt.Sprintf("%s%s", imageID.String(), ext)

	if err := os.MkdirAll(s.config.Upload.Dir, 0o755); err != nil {
		s.log.Error("Failed to create upload directory", zap.Error(err))
		return nil, fmt.Errorf("failed to store image")
	}
	if err := os.WriteFile(filepath.Join(s.config.Upload.Dir, filename), data, 0o644); err != nil {
		s.log.Error("Failed to write image file", zap.Error(err), zap.String("filename", filename))
		return nil, fmt.Errorf("failed to store image")
	}

	isPrimary := req.IsPrimary || len(existing) == 0
	if isPrimary {
		if err := s.repo.Image.ClearPrimary(ctx, productID); err != nil {
			return nil, fmt.Errorf("failed to update primary image")
		}
	}

	image := &entity.ProductImage{
		BaseSimple: entity.BaseSimple{
			ID:        imageID,
			CreatedAt: time.Now(),
		},
		ProductID: productID,
		URL:       s.config.Upload.PublicPath + "/" + filename,
		Alt:       req.Alt,
		IsPrimary: isPrimary,
		SortOrder: req.SortOrder,
	}

	if err := s.repo.Image.Create(ctx, image); err != nil {
		s.log.Error("Failed to record image", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("failed to store image")
	}

	s.log.Info("Product image uploaded",
		zap.String("product_id", productID.String()),
		zap.String("image_id", imageID.String()),
		zap.Bool("is_primary", isPrimary))

	resp := response.ImageToResponse(image)
	return &resp, nil
}

func (s *productService) SetPrimaryImage(ctx context.Context, productID, imageID uuid.UUID) error {
	image, err := s.repo.Image.FindByID(ctx, imageID)
	if err != nil {
		s.log.Error("Failed to load image", zap.Error(err), zap.String("image_id", imageID.String()))
		return fmt.Errorf("failed to find image")
	}
	if image == nil || image.ProductID != productID {
		return fmt.Errorf("image not found")
	}

	if err := s.repo.Image.ClearPrimary(ctx, productID); err != nil {
		s.log.Error("Failed to clear primary flag", zap.Error(err), zap.String("product_id", productID.String()))
		return fmt.Errorf("failed to update primary image")
	}
	if err := s.repo.Image.SetPrimary(ctx, imageID); err != nil {
		s.log.Error("Failed to set primary flag", zap.Error(err), zap.String("image_id", imageID.String()))
		return fmt.Errorf("failed to update primary image")
	}

	return nil
}

func (s *productService) DeleteImage(ctx context.Context, productID, imageID uuid.UUID) error {
	image, err := s.repo.Image.FindByID(ctx, imageID)
	if err != nil {
		s.log.Error("Failed to load image for delete", zap.Error(err), zap.String("image_id", imageID.String()))
		return fmt.Errorf("failed to find image")
	}
	if image == nil || image.ProductID != productID {
		return fmt.Errorf("image not found")
	}

	if err := s.repo.Image.Delete(ctx, imageID); err != nil {
		s.log.Error("Failed to delete image", zap.Error(err), zap.String("image_id", imageID.String()))
		return fmt.Errorf("failed to delete image")
	}

	// Best effort file cleanup, the record is already gone
	filename := filepath.Base(image.URL)
	if err := os.Remove(filepath.Join(s.config.Upload.Dir, filename)); err != nil && !os.IsNotExist(err) {
		s.log.Warn("Failed to remove image file", zap.Error(err), zap.String("filename", filename))
	}

	return nil
}

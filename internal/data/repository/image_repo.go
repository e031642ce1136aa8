package repository

import (
	"context"
	"fmt"

	"pricelist-manager/internal/data/entity"
	"pricelist-manager/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProductImageRepository interface {
	Create(ctx context.Context, image *entity.ProductImage) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ProductImage, error)
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]*entity.ProductImage, error)
	ClearPrimary(ctx context.Context, productID uuid.UUID) error
	SetPrimary(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProductID(ctx context.Context, productID uuid.UUID) error
}

type productImageRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProductImageRepository(db database.PgxIface, log *zap.Logger) ProductImageRepository {
	return &productImageRepository{
		db:  db,
		log: log.With(zap.String("repository", "product_image")),
	}
}

func (ir *productImageRepository) Create(ctx context.Context, image *entity.ProductImage) error {
	query := `
		INSERT INTO product_images (id, product_id, url, alt, is_primary, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := ir.db.Exec(ctx, query,
		image.ID,
		image.ProductID,
		image.URL,
		image.Alt,
		image.IsPrimary,
		image.SortOrder,
		image.CreatedAt,
	)

	if err != nil {
		ir.log.Error("Failed to create product image",
			zap.Error(err),
			zap.String("product_id", image.ProductID.String()),
		)
		return fmt.Errorf("create image for product %s: %w", image.ProductID.String(), err)
	}

	return nil
}

func (ir *productImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ProductImage, error) {
	query := `
		SELECT id, product_id, url, alt, is_primary, sort_order, created_at
		FROM product_images
		WHERE id = $1
	`

	var image entity.ProductImage
	err := ir.db.QueryRow(ctx, query, id).Scan(
		&image.ID,
		&image.ProductID,
		&image.URL,
		&image.Alt,
		&image.IsPrimary,
		&image.SortOrder,
		&image.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ir.log.Error("Failed to find product image by ID",
			zap.Error(err),
			zap.String("image_id", id.String()),
		)
		return nil, fmt.Errorf("find image by ID %s: %w", id.String(), err)
	}

	return &image, nil
}

func (ir *productImageRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]*entity.ProductImage, error) {
	query := `
		SELECT id, product_id, url, alt, is_primary, sort_order, created_at
		FROM product_images
		WHERE product_id = $1
		ORDER BY is_primary DESC, sort_order ASC, created_at ASC
	`

	rows, err := ir.db.Query(ctx, query, productID)
	if err != nil {
		ir.log.Error("Failed to get product images",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return nil, fmt.Errorf("find images for product %s: %w", productID.String(), err)
	}
	defer rows.Close()

	var images []*entity.ProductImage
	for rows.Next() {
		var image entity.ProductImage
		err := rows.Scan(
			&image.ID,
			&image.ProductID,
			&image.URL,
			&image.Alt,
			&image.IsPrimary,
			&image.SortOrder,
			&image.CreatedAt,
		)
		if err != nil {
			ir.log.Error("Failed to scan product image row", zap.Error(err))
			return nil, fmt.Errorf("scan product image row: %w", err)
		}
		images = append(images, &image)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product image rows: %w", err)
	}

	return images, nil
}

// ClearPrimary unsets the primary flag on every image of the product,
// keeping the one-primary-per-product invariant before a new flag is set.
func (ir *productImageRepository) ClearPrimary(ctx context.Context, productID uuid.UUID) error {
	query := `UPDATE product_images SET is_primary = FALSE WHERE product_id = $1 AND is_primary = TRUE`

	_, err := ir.db.Exec(ctx, query, productID)
	if err != nil {
		ir.log.Error("Failed to clear primary image flag",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return fmt.Errorf("clear primary for product %s: %w", productID.String(), err)
	}

	return nil
}

func (ir *productImageRepository) SetPrimary(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE product_images SET is_primary = TRUE WHERE id = $1`

	result, err := ir.db.Exec(ctx, query, id)
	if err != nil {
		ir.log.Error("Failed to set primary image",
			zap.Error(err),
			zap.String("image_id", id.String()),
		)
		return fmt.Errorf("set primary image %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("image %s not found", id.String())
	}

	return nil
}

func (ir *productImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM product_images WHERE id = $1`

	result, err := ir.db.Exec(ctx, query, id)
	if err != nil {
		ir.log.Error("Failed to delete product image",
			zap.Error(err),
			zap.String("image_id", id.String()),
		)
		return fmt.Errorf("delete image %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("image %s not found", id.String())
	}

	return nil
}

func (ir *productImageRepository) DeleteByProductID(ctx context.Context, productID uuid.UUID) error {
	query := `DELETE FROM product_images WHERE product_id = $1`

	_, err := ir.db.Exec(ctx, query, productID)
	if err != nil {
		ir.log.Error("Failed to delete product images",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return fmt.Errorf("delete images for product %s: %w", productID.String(), err)
	}

	return nil
}

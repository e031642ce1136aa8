package repository

import (
	"context"
	"fmt"
	"strings"

	"pricelist-manager/internal/data/entity"
	"pricelist-manager/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ProductFilter narrows list queries. Zero values mean no constraint.
type ProductFilter struct {
	Search     string
	CategoryID *uuid.UUID
	MinPrice   *float64
	MaxPrice   *float64
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	CreateBatch(ctx context.Context, products []*entity.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindBySerialNumber(ctx context.Context, serial string) (*entity.Product, error)
	FindSerialNumbersIn(ctx context.Context, serials []string) (map[string]bool, error)
	FindAll(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, error)
	CountAll(ctx context.Context, filter ProductFilter) (int64, error)
	CountByCategoryID(ctx context.Context, categoryID uuid.UUID) (int64, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProductRepository(db database.PgxIface, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log.With(zap.String("repository", "product")),
	}
}

const productColumns = `id, name, serial_number, price, stock, discount, description,
		       category_id, created_at, updated_at, deleted_at`

func (pr *productRepository) scanProduct(row pgx.Row) (*entity.Product, error) {
	var product entity.Product
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.SerialNumber,
		&product.Price,
		&product.Stock,
		&product.Discount,
		&product.Description,
		&product.CategoryID,
		&product.CreatedAt,
		&product.UpdatedAt,
		&product.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// buildFilter renders the WHERE tail and arguments for filter, with
// placeholders starting after the already-bound args.
func buildFilter(filter ProductFilter, startArg int) (string, []any) {
	var clauses []string
	var args []any
	arg := startArg

	if filter.Search != "" {
		clauses = append(clauses, fmt.Sprintf(
			"(name ILIKE $%d OR serial_number ILIKE $%d OR description ILIKE $%d)",
			arg, arg, arg))
		args = append(args, "%"+filter.Search+"%")
		arg++
	}
	if filter.CategoryID != nil {
		clauses = append(clauses, fmt.Sprintf("category_id = $%d", arg))
		args = append(args, *filter.CategoryID)
		arg++
	}
	if filter.MinPrice != nil {
		clauses = append(clauses, fmt.Sprintf("price >= $%d", arg))
		args = append(args, *filter.MinPrice)
		arg++
	}
	if filter.MaxPrice != nil {
		clauses = append(clauses, fmt.Sprintf("price <= $%d", arg))
		args = append(args, *filter.MaxPrice)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " AND " + strings.Join(clauses, " AND "), args
}

func (pr *productRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, serial_number, price, stock, discount,
		                     description, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := pr.db.Exec(ctx, query,
		product.ID,
		product.Name,
		product.SerialNumber,
		product.Price,
		product.Stock,
		product.Discount,
		product.Description,
		product.CategoryID,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		pr.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("serial_number", product.SerialNumber),
		)
		return fmt.Errorf("create product %s: %w", product.SerialNumber, err)
	}

	return nil
}

// CreateBatch inserts products inside one transaction so a bulk import
// either lands completely or not at all.
func (pr *productRepository) CreateBatch(ctx context.Context, products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}

	tx, err := pr.db.Begin(ctx)
	if err != nil {
		pr.log.Error("Failed to begin batch insert transaction", zap.Error(err))
		return fmt.Errorf("begin batch insert: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO products (id, name, serial_number, price, stock, discount,
		                     description, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	for _, product := range products {
		_, err := tx.Exec(ctx, query,
			product.ID,
			product.Name,
			product.SerialNumber,
			product.Price,
			product.Stock,
			product.Discount,
			product.Description,
			product.CategoryID,
			product.CreatedAt,
			product.UpdatedAt,
		)
		if err != nil {
			pr.log.Error("Failed to insert product in batch",
				zap.Error(err),
				zap.String("serial_number", product.SerialNumber),
			)
			return fmt.Errorf("batch insert product %s: %w", product.SerialNumber, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit batch insert: %w", err)
	}

	pr.log.Info("Batch insert committed", zap.Int("count", len(products)))
	return nil
}

func (pr *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND deleted_at IS NULL`

	product, err := pr.scanProduct(pr.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		pr.log.Error("Failed to find product by ID",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return nil, fmt.Errorf("find product by ID %s: %w", id.String(), err)
	}

	return product, nil
}

func (pr *productRepository) FindBySerialNumber(ctx context.Context, serial string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE serial_number = $1 AND deleted_at IS NULL`

	product, err := pr.scanProduct(pr.db.QueryRow(ctx, query, serial))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		pr.log.Error("Failed to find product by serial number",
			zap.Error(err),
			zap.String("serial_number", serial),
		)
		return nil, fmt.Errorf("find product by serial %s: %w", serial, err)
	}

	return product, nil
}

// FindSerialNumbersIn returns which of the given serial numbers already
// exist, as a set keyed by serial.
func (pr *productRepository) FindSerialNumbersIn(ctx context.Context, serials []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(serials) == 0 {
		return existing, nil
	}

	query := `SELECT serial_number FROM products WHERE serial_number = ANY($1) AND deleted_at IS NULL`

	rows, err := pr.db.Query(ctx, query, serials)
	if err != nil {
		pr.log.Error("Failed to check existing serial numbers",
			zap.Error(err),
			zap.Int("count", len(serials)),
		)
		return nil, fmt.Errorf("check existing serial numbers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var serial string
		if err := rows.Scan(&serial); err != nil {
			return nil, fmt.Errorf("scan serial number: %w", err)
		}
		existing[serial] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate serial number rows: %w", err)
	}

	return existing, nil
}

func (pr *productRepository) FindAll(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, error) {
	where, filterArgs := buildFilter(filter, 3)
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE deleted_at IS NULL` + where + `
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	args := append([]any{limit, offset}, filterArgs...)
	rows, err := pr.db.Query(ctx, query, args...)
	if err != nil {
		pr.log.Error("Failed to get products",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		product, err := pr.scanProduct(rows)
		if err != nil {
			pr.log.Error("Failed to scan product row", zap.Error(err))
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

func (pr *productRepository) CountAll(ctx context.Context, filter ProductFilter) (int64, error) {
	where, args := buildFilter(filter, 1)
	query := `SELECT COUNT(*) FROM products WHERE deleted_at IS NULL` + where

	var count int64
	err := pr.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		pr.log.Error("Failed to count products", zap.Error(err))
		return 0, fmt.Errorf("count products: %w", err)
	}

	return count, nil
}

func (pr *productRepository) CountByCategoryID(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM products WHERE category_id = $1 AND deleted_at IS NULL`

	var count int64
	err := pr.db.QueryRow(ctx, query, categoryID).Scan(&count)
	if err != nil {
		pr.log.Error("Failed to count products by category",
			zap.Error(err),
			zap.String("category_id", categoryID.String()),
		)
		return 0, fmt.Errorf("count products by category %s: %w", categoryID.String(), err)
	}

	return count, nil
}

func (pr *productRepository) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, serial_number = $3, price = $4, stock = $5, discount = $6,
		    description = $7, category_id = $8, updated_at = $9
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := pr.db.Exec(ctx, query,
		product.ID,
		product.Name,
		product.SerialNumber,
		product.Price,
		product.Stock,
		product.Discount,
		product.Description,
		product.CategoryID,
		product.UpdatedAt,
	)

	if err != nil {
		pr.log.Error("Failed to update product",
			zap.Error(err),
			zap.String("product_id", product.ID.String()),
		)
		return fmt.Errorf("update product %s: %w", product.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found", product.ID.String())
	}

	return nil
}

func (pr *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE products SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := pr.db.Exec(ctx, query, id)
	if err != nil {
		pr.log.Error("Failed to delete product",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return fmt.Errorf("delete product %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found", id.String())
	}

	pr.log.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

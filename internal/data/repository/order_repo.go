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

// OrderFilter narrows list queries. Zero values mean no constraint.
type OrderFilter struct {
	UserID *uuid.UUID
	Status string
}

type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *entity.Order, items []*entity.OrderItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindAll(ctx context.Context, filter OrderFilter, limit, offset int) ([]*entity.Order, error)
	CountAll(ctx context.Context, filter OrderFilter) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
	DeleteWithRestock(ctx context.Context, id uuid.UUID) error
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

const orderColumns = `id, user_id, status, total_amount, created_at, updated_at, deleted_at`

func (or *orderRepository) scanOrder(row pgx.Row) (*entity.Order, error) {
	var order entity.Order
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&order.TotalAmount,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateWithItems inserts the order and its items and decrements stock for
// every ordered product in one transaction. The decrement is guarded so the
// whole order rolls back when any product has too little stock left.
func (or *orderRepository) CreateWithItems(ctx context.Context, order *entity.Order, items []*entity.OrderItem) error {
	tx, err := or.db.Begin(ctx)
	if err != nil {
		or.log.Error("Failed to begin order transaction", zap.Error(err))
		return fmt.Errorf("begin order transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	orderQuery := `
		INSERT INTO orders (id, user_id, status, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = tx.Exec(ctx, orderQuery,
		order.ID,
		order.UserID,
		order.Status,
		order.TotalAmount,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		or.log.Error("Failed to insert order",
			zap.Error(err),
			zap.String("order_id", order.ID.String()),
		)
		return fmt.Errorf("insert order %s: %w", order.ID.String(), err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, quantity, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	stockQuery := `
		UPDATE products
		SET stock = stock - $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL AND stock >= $2
	`

	for _, item := range items {
		_, err := tx.Exec(ctx, itemQuery,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.Quantity,
			item.Price,
			item.CreatedAt,
		)
		if err != nil {
			or.log.Error("Failed to insert order item",
				zap.Error(err),
				zap.String("product_id", item.ProductID.String()),
			)
			return fmt.Errorf("insert order item for product %s: %w", item.ProductID.String(), err)
		}

		result, err := tx.Exec(ctx, stockQuery, item.ProductID, item.Quantity)
		if err != nil {
			or.log.Error("Failed to decrement stock",
				zap.Error(err),
				zap.String("product_id", item.ProductID.String()),
			)
			return fmt.Errorf("decrement stock for product %s: %w", item.ProductID.String(), err)
		}
		if result.RowsAffected() == 0 {
			or.log.Warn("Insufficient stock, rolling back order",
				zap.String("order_id", order.ID.String()),
				zap.String("product_id", item.ProductID.String()),
				zap.Int("quantity", item.Quantity),
			)
			return fmt.Errorf("insufficient stock for product %s", item.ProductID.String())
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order transaction: %w", err)
	}

	or.log.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.Int("items", len(items)),
	)
	return nil
}

func (or *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND deleted_at IS NULL`

	order, err := or.scanOrder(or.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		or.log.Error("Failed to find order by ID",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, fmt.Errorf("find order by ID %s: %w", id.String(), err)
	}

	return order, nil
}

func buildOrderFilter(filter OrderFilter, startArg int) (string, []any) {
	var clauses []string
	var args []any
	arg := startArg

	if filter.UserID != nil {
		clauses = append(clauses, fmt.Sprintf("user_id = $%d", arg))
		args = append(args, *filter.UserID)
		arg++
	}
	if filter.Status != "" {
		clauses = append(clauses, fmt.Sprintf("status = $%d", arg))
		args = append(args, filter.Status)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " AND " + strings.Join(clauses, " AND "), args
}

func (or *orderRepository) FindAll(ctx context.Context, filter OrderFilter, limit, offset int) ([]*entity.Order, error) {
	where, filterArgs := buildOrderFilter(filter, 3)
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE deleted_at IS NULL` + where + `
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	args := append([]any{limit, offset}, filterArgs...)
	rows, err := or.db.Query(ctx, query, args...)
	if err != nil {
		or.log.Error("Failed to get orders",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		order, err := or.scanOrder(rows)
		if err != nil {
			or.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

func (or *orderRepository) CountAll(ctx context.Context, filter OrderFilter) (int64, error) {
	where, args := buildOrderFilter(filter, 1)
	query := `SELECT COUNT(*) FROM orders WHERE deleted_at IS NULL` + where

	var count int64
	err := or.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		or.log.Error("Failed to count orders", zap.Error(err))
		return 0, fmt.Errorf("count orders: %w", err)
	}

	return count, nil
}

func (or *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	query := `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := or.db.Exec(ctx, query, id, status)
	if err != nil {
		or.log.Error("Failed to update order status",
			zap.Error(err),
			zap.String("order_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update status for order %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", id.String())
	}

	or.log.Info("Order status updated",
		zap.String("order_id", id.String()),
		zap.String("status", string(status)),
	)
	return nil
}

// DeleteWithRestock soft-deletes the order and returns its reserved
// quantities back to product stock in one transaction.
func (or *orderRepository) DeleteWithRestock(ctx context.Context, id uuid.UUID) error {
	tx, err := or.db.Begin(ctx)
	if err != nil {
		or.log.Error("Failed to begin order delete transaction", zap.Error(err))
		return fmt.Errorf("begin order delete: %w", err)
	}
	defer tx.Rollback(ctx)

	restockQuery := `
		UPDATE products p
		SET stock = p.stock + oi.quantity, updated_at = NOW()
		FROM order_items oi
		WHERE oi.order_id = $1 AND oi.product_id = p.id
	`
	if _, err := tx.Exec(ctx, restockQuery, id); err != nil {
		or.log.Error("Failed to restock order items",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return fmt.Errorf("restock items for order %s: %w", id.String(), err)
	}

	deleteQuery := `UPDATE orders SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	result, err := tx.Exec(ctx, deleteQuery, id)
	if err != nil {
		or.log.Error("Failed to delete order",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return fmt.Errorf("delete order %s: %w", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", id.String())
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order delete: %w", err)
	}

	or.log.Info("Order deleted with restock", zap.String("order_id", id.String()))
	return nil
}

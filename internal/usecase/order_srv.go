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

type OrderService interface {
	Create(ctx context.Context, userID uuid.UUID, req *request.OrderRequest) (*response.OrderResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*response.OrderResponse, error)
	List(ctx context.Context, req *request.OrderListRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	ListByUser(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *request.OrderStatusRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewOrderService(repo *repository.Repository, log *zap.Logger) OrderService {
	return &orderService{
		repo: repo,
		log:  log,
	}
}

func (s *orderService) Create(ctx context.Context, userID uuid.UUID, req *request.OrderRequest) (*response.OrderResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Order create validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Check user exists
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load user for order", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	// 3. Check every product before touching stock
	now := time.Now()
	orderID := uuid.New()
	var total float64
	items := make([]*entity.OrderItem, 0, len(req.Items))

	for _, itemReq := range req.Items {
		productID, err := uuid.Parse(itemReq.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product id")
		}

		product, err := s.repo.Product.FindByID(ctx, productID)
		if err != nil {
			s.log.Error("Failed to load product for order",
				zap.Error(err), zap.String("product_id", itemReq.ProductID))
			return nil, fmt.Errorf("failed to find product")
		}
		if product == nil {
			return nil, fmt.Errorf("product not found")
		}
		if product.Stock < itemReq.Quantity {
			s.log.Warn("Order rejected, not enough stock",
				zap.String("product_id", itemReq.ProductID),
				zap.Int("stock", product.Stock),
				zap.Int("requested", itemReq.Quantity))
			return nil, fmt.Errorf("insufficient stock for %s", product.Name)
		}

		items = append(items, &entity.OrderItem{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			OrderID:   orderID,
			ProductID: productID,
			Quantity:  itemReq.Quantity,
			Price:     itemReq.Price,
		})
		total += itemReq.Price * float64(itemReq.Quantity)
	}

	// 4. Insert order, items and decrement stock atomically. The stock
	// check above is advisory only, the transaction is the real guard.
	order := &entity.Order{
		Base: entity.Base{
			ID:        orderID,
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:      userID,
		Status:      entity.OrderStatusPending,
		TotalAmount: total,
	}

	if err := s.repo.Order.CreateWithItems(ctx, order, items); err != nil {
		s.log.Error("Failed to create order", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("insufficient stock or order failed")
	}

	s.log.Info("Order created",
		zap.String("order_id", orderID.String()),
		zap.String("user_id", userID.String()),
		zap.Float64("total", total))

	resp := response.OrderToResponse(order, items, user.DiscountPercentage)
	return &resp, nil
}

// userDiscount resolves the order owner's level discount for display.
// A missing user (deleted after ordering) just means no discount shown.
func (s *orderService) userDiscount(ctx context.Context, userID uuid.UUID) float64 {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil || user == nil {
		return 0
	}
	return user.DiscountPercentage
}

func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*response.OrderResponse, error) {
	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get order", zap.Error(err), zap.String("order_id", id.String()))
		return nil, fmt.Errorf("failed to find order")
	}
	if order == nil {
		return nil, fmt.Errorf("order not found")
	}

	items, err := s.repo.OrderItem.FindByOrderID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load order items", zap.Error(err), zap.String("order_id", id.String()))
		return nil, fmt.Errorf("failed to load order items")
	}

	resp := response.OrderToResponse(order, items, s.userDiscount(ctx, order.UserID))
	return &resp, nil
}

func (s *orderService) List(ctx context.Context, req *request.OrderListRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Order list validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	filter := repository.OrderFilter{Status: req.Status}
	if req.UserID != nil {
		userID, err := uuid.Parse(*req.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid user id")
		}
		filter.UserID = &userID
	}

	return s.list(ctx, filter, &req.PaginatedRequest)
}

func (s *orderService) ListByUser(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	return s.list(ctx, repository.OrderFilter{UserID: &userID}, req)
}

func (s *orderService) list(ctx context.Context, filter repository.OrderFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	orders, err := s.repo.Order.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list orders", zap.Error(err))
		return nil, fmt.Errorf("failed to list orders")
	}

	total, err := s.repo.Order.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count orders", zap.Error(err))
		return nil, fmt.Errorf("failed to count orders")
	}

	responses := make([]response.OrderResponse, 0, len(orders))
	for _, order := range orders {
		items, err := s.repo.OrderItem.FindByOrderID(ctx, order.ID)
		if err != nil {
			s.log.Error("Failed to load order items",
				zap.Error(err), zap.String("order_id", order.ID.String()))
			return nil, fmt.Errorf("failed to load order items")
		}
		responses = append(responses, response.OrderToResponse(order, items, s.userDiscount(ctx, order.UserID)))
	}

	return response.NewPaginatedResponse(responses, req.Page, req.Limit(), total), nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, req *request.OrderStatusRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Order status validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load order for status update", zap.Error(err), zap.String("order_id", id.String()))
		return fmt.Errorf("failed to find order")
	}
	if order == nil {
		return fmt.Errorf("order not found")
	}

	if err := s.repo.Order.UpdateStatus(ctx, id, entity.OrderStatus(req.Status)); err != nil {
		s.log.Error("Failed to update order status", zap.Error(err), zap.String("order_id", id.String()))
		return fmt.Errorf("failed to update order status")
	}

	return nil
}

// Delete removes a pending order and puts its quantities back in stock.
// Orders past PENDING are already being fulfilled and stay.
func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load order for delete", zap.Error(err), zap.String("order_id", id.String()))
		return fmt.Errorf("failed to find order")
	}
	if order == nil {
		return fmt.Errorf("order not found")
	}
	if order.Status != entity.OrderStatusPending {
		return fmt.Errorf("only pending orders can be deleted")
	}

	if err := s.repo.Order.DeleteWithRestock(ctx, id); err != nil {
		s.log.Error("Failed to delete order", zap.Error(err), zap.String("order_id", id.String()))
		return fmt.Errorf("failed to delete order")
	}

	return nil
}

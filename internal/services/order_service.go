package services

import (
	"context"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"
)

type OrderService struct {
	orders repository.OrderRepository
}

func NewOrderService(orders repository.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

func (s *OrderService) ListOrders(ctx context.Context, userID uint64) ([]domain.Order, error) {
	return s.orders.FindByUser(userID)
}

// GetOrder returns one of the caller's orders with its items. Another user's
// order is ErrForbidden, not ErrNotFound, matching the cart ownership rules.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uint64) (*domain.Order, error) {
	o, err := s.orders.FindByID(orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrNotFound
	}
	if o.UserID != userID {
		return nil, ErrForbidden
	}
	return o, nil
}

// ListRecentOrders is the admin dashboard feed.
func (s *OrderService) ListRecentOrders(ctx context.Context, principal domain.Principal, limit int) ([]domain.Order, error) {
	if !principal.IsAdmin {
		return nil, ErrForbidden
	}
	return s.orders.FindRecent(limit)
}

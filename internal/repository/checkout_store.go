package repository

import (
	"context"
	"errors"

	"storefront-service/internal/domain"
)

// ErrStockConflict reports a stock decrement that would drive the quantity
// below zero.
var ErrStockConflict = errors.New("stock decrement rejected: would go negative")

// CheckoutTx is the view of the store available inside one materialization
// transaction. Reads take row locks so that two concurrent confirmations of
// the same cart cannot both succeed, and stock decrements cannot oversell.
type CheckoutTx interface {
	// CartItemsForUpdate locks and returns the user's cart rows in insertion
	// order, products preloaded.
	CartItemsForUpdate(userID uint64) ([]domain.CartItem, error)
	// ProductForUpdate locks and returns one product row.
	ProductForUpdate(id uint64) (*domain.Product, error)
	CreateOrder(order *domain.Order) error
	CreateOrderItems(items []domain.OrderItem) error
	// DecrementStock subtracts qty from the product's stock, guarded so the
	// result can never go negative. Returns ErrStockConflict when the guard
	// rejects the update.
	DecrementStock(productID uint64, qty int64) error
	ClearCart(userID uint64) error
}

// CheckoutStore runs fn inside a single database transaction. A non-nil error
// from fn rolls back everything fn did through the CheckoutTx.
type CheckoutStore interface {
	InTransaction(ctx context.Context, fn func(tx CheckoutTx) error) error
}

package services

import (
	"context"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/shopspring/decimal"
)

type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// CartLine is a cart item with its subtotal derived from the product's
// current price.
type CartLine struct {
	Item     domain.CartItem
	Subtotal decimal.Decimal
}

// Add puts quantity units of a product into the user's cart. If the product
// is already carted the quantities merge, and the merged quantity is what
// gets validated against current stock.
func (s *CartService) Add(ctx context.Context, userID, productID uint64, quantity int64) error {
	if quantity < 1 {
		return ErrInvalidInput
	}

	product, err := s.products.FindByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	if !product.IsActive {
		return ErrUnavailable
	}

	existing, err := s.carts.FindByUserAndProduct(userID, productID)
	if err != nil {
		return err
	}

	if existing != nil {
		combined := existing.Quantity + quantity
		if combined > product.StockQuantity {
			return ErrInsufficientStock
		}
		existing.Quantity = combined
		return s.carts.Update(existing)
	}

	if quantity > product.StockQuantity {
		return ErrInsufficientStock
	}
	return s.carts.Save(&domain.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// SetQuantity updates an owned cart item in place. Quantity zero deletes it.
func (s *CartService) SetQuantity(ctx context.Context, userID, itemID uint64, quantity int64) error {
	if quantity < 0 {
		return ErrInvalidInput
	}

	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return err
	}

	if quantity == 0 {
		return s.carts.Delete(item.ID)
	}

	product, err := s.products.FindByID(item.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	if quantity > product.StockQuantity {
		return ErrInsufficientStock
	}

	item.Quantity = quantity
	return s.carts.Update(item)
}

func (s *CartService) Remove(ctx context.Context, userID, itemID uint64) error {
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return err
	}
	return s.carts.Delete(item.ID)
}

// List returns the cart in insertion order with per-line subtotals.
func (s *CartService) List(ctx context.Context, userID uint64) ([]CartLine, error) {
	items, err := s.carts.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		subtotal := decimal.Zero
		if item.Product != nil {
			subtotal = item.Product.Price.Mul(decimal.NewFromInt(item.Quantity))
		}
		lines = append(lines, CartLine{Item: item, Subtotal: subtotal})
	}
	return lines, nil
}

func (s *CartService) ownedItem(userID, itemID uint64) (*domain.CartItem, error) {
	item, err := s.carts.FindByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	if item.UserID != userID {
		return nil, ErrForbidden
	}
	return item, nil
}

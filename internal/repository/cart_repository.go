package repository

import (
	"storefront-service/internal/domain"
)

type CartRepository interface {
	Save(item *domain.CartItem) error
	Update(item *domain.CartItem) error
	Delete(id uint64) error
	FindByID(id uint64) (*domain.CartItem, error)
	FindByUserAndProduct(userID, productID uint64) (*domain.CartItem, error)
	// FindByUser returns the user's items in insertion order, products preloaded.
	FindByUser(userID uint64) ([]domain.CartItem, error)
}

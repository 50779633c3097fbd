package repository

import (
	"storefront-service/internal/domain"
)

type OrderRepository interface {
	FindByID(id uint64) (*domain.Order, error)
	// FindByUser returns the user's orders newest first, without items.
	FindByUser(userID uint64) ([]domain.Order, error)
	FindRecent(limit int) ([]domain.Order, error)
}

package repository

import (
	"storefront-service/internal/domain"
)

type ProductFilter struct {
	CategoryID uint64
	Search     string
	Limit      int
}

type ProductRepository interface {
	FindByID(id uint64) (*domain.Product, error)
	FindActive(filter ProductFilter) ([]domain.Product, error)
}

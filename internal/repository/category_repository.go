package repository

import (
	"storefront-service/internal/domain"
)

type CategoryRepository interface {
	FindByID(id uint64) (*domain.Category, error)
	FindAll() ([]domain.Category, error)
}

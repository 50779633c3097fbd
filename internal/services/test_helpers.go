package services

import (
	"time"

	"storefront-service/internal/domain"

	"github.com/shopspring/decimal"
)

func productFixture(id uint64, name, price string, stock int64, active bool) *domain.Product {
	return &domain.Product{
		ID:            id,
		Name:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		CategoryID:    1,
		IsActive:      active,
		CreatedAt:     time.Now(),
	}
}

func cartItemFixture(id, userID uint64, product *domain.Product, qty int64) domain.CartItem {
	return domain.CartItem{
		ID:        id,
		UserID:    userID,
		ProductID: product.ID,
		Quantity:  qty,
		AddedAt:   time.Now(),
		Product:   product,
	}
}

const (
	testUserID    = uint64(1)
	testUserEmail = "shopper@example.com"
)

func testPrincipal() domain.Principal {
	return domain.Principal{UserID: testUserID, Email: testUserEmail}
}

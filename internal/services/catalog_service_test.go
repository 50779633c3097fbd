package services

import (
	"context"
	"testing"

	"storefront-service/internal/domain"
	"storefront-service/internal/mocks"
	"storefront-service/internal/repository"

	"github.com/stretchr/testify/assert"
)

func TestCatalogService_GetProduct(t *testing.T) {
	tests := []struct {
		name          string
		id            uint64
		product       *domain.Product
		expectedError error
	}{
		{
			name:    "active product",
			id:      10,
			product: productFixture(10, "Widget", "10.00", 5, true),
		},
		{
			name:          "inactive product hidden",
			id:            10,
			product:       productFixture(10, "Widget", "10.00", 5, false),
			expectedError: ErrNotFound,
		},
		{
			name:          "missing product",
			id:            99,
			expectedError: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := new(mocks.MockProductRepository)
			categories := new(mocks.MockCategoryRepository)
			if tt.product != nil {
				products.On("FindByID", tt.id).Return(tt.product, nil)
			} else {
				products.On("FindByID", tt.id).Return(nil, nil)
			}

			service := NewCatalogService(products, categories)
			got, err := service.GetProduct(context.Background(), tt.id)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.id, got.ID)
			}
		})
	}
}

func TestCatalogService_ListProducts(t *testing.T) {
	products := new(mocks.MockProductRepository)
	categories := new(mocks.MockCategoryRepository)

	filter := repository.ProductFilter{CategoryID: 3, Search: "widg", Limit: 20}
	products.On("FindActive", filter).Return([]domain.Product{
		*productFixture(10, "Widget", "10.00", 5, true),
	}, nil)

	service := NewCatalogService(products, categories)
	got, err := service.ListProducts(context.Background(), filter)

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	products.AssertExpectations(t)
}

func TestCatalogService_GetCategory(t *testing.T) {
	products := new(mocks.MockProductRepository)
	categories := new(mocks.MockCategoryRepository)
	categories.On("FindByID", uint64(8)).Return(nil, nil)

	service := NewCatalogService(products, categories)
	_, err := service.GetCategory(context.Background(), 8)

	assert.ErrorIs(t, err, ErrNotFound)
}

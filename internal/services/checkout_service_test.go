package services

import (
	"context"
	"errors"
	"testing"

	"storefront-service/internal/domain"
	"storefront-service/internal/infra/stripe"
	"storefront-service/internal/mocks"
	"storefront-service/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCheckoutFixture() (*mocks.MockCartRepository, *mocks.MockCheckoutStore, *mocks.MockCheckoutTx, *mocks.MockGateway, *mocks.MockPublisher, *CheckoutService) {
	carts := new(mocks.MockCartRepository)
	tx := new(mocks.MockCheckoutTx)
	store := &mocks.MockCheckoutStore{Tx: tx}
	gateway := new(mocks.MockGateway)
	publisher := new(mocks.MockPublisher)
	service := NewCheckoutService(carts, store, gateway, publisher)
	return carts, store, tx, gateway, publisher, service
}

func TestCheckoutService_CreateIntent(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		carts, _, _, gateway, _, service := newCheckoutFixture()
		carts.On("FindByUser", testUserID).Return([]domain.CartItem{}, nil)

		_, err := service.CreateIntent(context.Background(), testPrincipal())

		assert.ErrorIs(t, err, ErrEmptyCart)
		gateway.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("prices live cart in cents", func(t *testing.T) {
		carts, _, _, gateway, _, service := newCheckoutFixture()
		widget := productFixture(10, "Widget", "10.00", 5, true)
		gadget := productFixture(11, "Gadget", "5.00", 1, true)
		carts.On("FindByUser", testUserID).Return([]domain.CartItem{
			cartItemFixture(1, testUserID, widget, 2),
			cartItemFixture(2, testUserID, gadget, 1),
		}, nil)
		gateway.On("CreateIntent", mock.Anything, int64(2500), "usd", map[string]string{
			"user_id":    "1",
			"user_email": testUserEmail,
		}).Return(&stripe.PaymentIntent{
			ID:           "pi_123",
			ClientSecret: "pi_123_secret",
			Status:       "requires_payment_method",
			Amount:       2500,
		}, nil)

		summary, err := service.CreateIntent(context.Background(), testPrincipal())

		assert.NoError(t, err)
		assert.Equal(t, int64(2500), summary.AmountCents)
		assert.Equal(t, "pi_123_secret", summary.ClientSecret)
		gateway.AssertExpectations(t)
	})

	t.Run("gateway failure is retryable", func(t *testing.T) {
		carts, _, _, gateway, _, service := newCheckoutFixture()
		widget := productFixture(10, "Widget", "10.00", 5, true)
		carts.On("FindByUser", testUserID).Return([]domain.CartItem{
			cartItemFixture(1, testUserID, widget, 1),
		}, nil)
		gateway.On("CreateIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("connection refused"))

		_, err := service.CreateIntent(context.Background(), testPrincipal())

		assert.ErrorIs(t, err, ErrPaymentGateway)
	})
}

func TestCheckoutService_Confirm(t *testing.T) {
	settled := &stripe.PaymentIntent{ID: "pi_123", Status: "succeeded", Amount: 2500}

	t.Run("missing input", func(t *testing.T) {
		_, _, _, gateway, _, service := newCheckoutFixture()

		_, err := service.Confirm(context.Background(), testPrincipal(), "", "1 Main St")
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = service.Confirm(context.Background(), testPrincipal(), "pi_123", "")
		assert.ErrorIs(t, err, ErrInvalidInput)

		gateway.AssertNotCalled(t, "GetIntent", mock.Anything, mock.Anything)
	})

	t.Run("payment not settled mutates nothing", func(t *testing.T) {
		_, store, tx, gateway, _, service := newCheckoutFixture()
		gateway.On("GetIntent", mock.Anything, "pi_123").Return(&stripe.PaymentIntent{
			ID:     "pi_123",
			Status: "requires_payment_method",
		}, nil)

		_, err := service.Confirm(context.Background(), testPrincipal(), "pi_123", "1 Main St")

		assert.ErrorIs(t, err, ErrPaymentNotSettled)
		store.AssertNotCalled(t, "InTransaction", mock.Anything)
		tx.AssertNotCalled(t, "CreateOrder", mock.Anything)
	})

	t.Run("unknown intent", func(t *testing.T) {
		_, store, _, gateway, _, service := newCheckoutFixture()
		gateway.On("GetIntent", mock.Anything, "pi_404").Return(nil, nil)

		_, err := service.Confirm(context.Background(), testPrincipal(), "pi_404", "1 Main St")

		assert.ErrorIs(t, err, ErrNotFound)
		store.AssertNotCalled(t, "InTransaction", mock.Anything)
	})

	t.Run("materializes cart into paid order", func(t *testing.T) {
		_, store, tx, gateway, publisher, service := newCheckoutFixture()
		widget := productFixture(10, "Widget", "10.00", 5, true)
		gadget := productFixture(11, "Gadget", "5.00", 1, true)

		gateway.On("GetIntent", mock.Anything, "pi_123").Return(settled, nil)
		store.On("InTransaction", mock.Anything).Return(nil)
		tx.On("CartItemsForUpdate", testUserID).Return([]domain.CartItem{
			cartItemFixture(1, testUserID, widget, 2),
			cartItemFixture(2, testUserID, gadget, 1),
		}, nil)
		tx.On("ProductForUpdate", uint64(10)).Return(widget, nil)
		tx.On("ProductForUpdate", uint64(11)).Return(gadget, nil)
		tx.On("CreateOrder", mock.AnythingOfType("*domain.Order")).Return(nil).Run(func(args mock.Arguments) {
			args.Get(0).(*domain.Order).ID = 42
		})
		tx.On("CreateOrderItems", mock.AnythingOfType("[]domain.OrderItem")).Return(nil)
		tx.On("DecrementStock", uint64(10), int64(2)).Return(nil)
		tx.On("DecrementStock", uint64(11), int64(1)).Return(nil)
		tx.On("ClearCart", testUserID).Return(nil)
		publisher.On("Publish", mock.Anything, "order.paid", mock.Anything).Return(nil).Maybe()

		order, err := service.Confirm(context.Background(), testPrincipal(), "pi_123", "1 Main St")

		assert.NoError(t, err)
		assert.Equal(t, uint64(42), order.ID)
		assert.Equal(t, domain.StatusPaid, order.Status)
		assert.Equal(t, "25.00", order.TotalAmount.StringFixed(2))
		assert.Equal(t, "pi_123", order.PaymentIntentID)
		assert.Equal(t, "1 Main St", order.ShippingAddress)

		assert.Len(t, order.Items, 2)
		assert.Equal(t, uint64(42), order.Items[0].OrderID)
		assert.Equal(t, int64(2), order.Items[0].Quantity)
		assert.Equal(t, "10.00", order.Items[0].Price.StringFixed(2))
		assert.Equal(t, int64(1), order.Items[1].Quantity)
		assert.Equal(t, "5.00", order.Items[1].Price.StringFixed(2))

		tx.AssertExpectations(t)
	})

	t.Run("already consumed cart is a duplicate guard", func(t *testing.T) {
		_, store, tx, gateway, _, service := newCheckoutFixture()
		gateway.On("GetIntent", mock.Anything, "pi_123").Return(settled, nil)
		store.On("InTransaction", mock.Anything).Return(nil)
		tx.On("CartItemsForUpdate", testUserID).Return([]domain.CartItem{}, nil)

		_, err := service.Confirm(context.Background(), testPrincipal(), "pi_123", "1 Main St")

		assert.ErrorIs(t, err, ErrEmptyCart)
		tx.AssertNotCalled(t, "CreateOrder", mock.Anything)
		tx.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything)
	})

	t.Run("stock conflict aborts the whole materialization", func(t *testing.T) {
		_, store, tx, gateway, publisher, service := newCheckoutFixture()
		widget := productFixture(10, "Widget", "10.00", 1, true)

		gateway.On("GetIntent", mock.Anything, "pi_123").Return(settled, nil)
		store.On("InTransaction", mock.Anything).Return(nil)
		tx.On("CartItemsForUpdate", testUserID).Return([]domain.CartItem{
			cartItemFixture(1, testUserID, widget, 2),
		}, nil)
		tx.On("ProductForUpdate", uint64(10)).Return(widget, nil)
		tx.On("CreateOrder", mock.AnythingOfType("*domain.Order")).Return(nil).Run(func(args mock.Arguments) {
			args.Get(0).(*domain.Order).ID = 43
		})
		tx.On("CreateOrderItems", mock.AnythingOfType("[]domain.OrderItem")).Return(nil)
		tx.On("DecrementStock", uint64(10), int64(2)).Return(repository.ErrStockConflict)

		_, err := service.Confirm(context.Background(), testPrincipal(), "pi_123", "1 Main St")

		assert.ErrorIs(t, err, ErrStockIntegrity)
		tx.AssertNotCalled(t, "ClearCart", mock.Anything)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("gateway transport failure", func(t *testing.T) {
		_, store, _, gateway, _, service := newCheckoutFixture()
		gateway.On("GetIntent", mock.Anything, "pi_123").Return(nil, errors.New("timeout"))

		_, err := service.Confirm(context.Background(), testPrincipal(), "pi_123", "1 Main St")

		assert.ErrorIs(t, err, ErrPaymentGateway)
		store.AssertNotCalled(t, "InTransaction", mock.Anything)
	})
}

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		amount string
		cents  int64
	}{
		{"25.00", 2500},
		{"0.00", 0},
		{"9.99", 999},
		{"10.005", 1000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.cents, toMinorUnits(decimal.RequireFromString(tt.amount)), "amount %s", tt.amount)
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"storefront-service/internal/domain"
	rabbit "storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/infra/stripe"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const checkoutCurrency = "usd"

// CheckoutService converts a user's cart into a durable order exactly once
// per settled payment. Intent creation only talks to the gateway; all
// mutation happens in Confirm, inside one transaction.
type CheckoutService struct {
	carts     repository.CartRepository
	store     repository.CheckoutStore
	gateway   stripe.GatewayInterface
	publisher rabbit.PublisherInterface
}

func NewCheckoutService(carts repository.CartRepository, store repository.CheckoutStore, gateway stripe.GatewayInterface, publisher rabbit.PublisherInterface) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		store:     store,
		gateway:   gateway,
		publisher: publisher,
	}
}

type IntentSummary struct {
	ClientSecret string
	AmountCents  int64
}

// CreateIntent prices the live cart and registers a payment intent for it.
// The amount shown here is informational; Confirm reprices the cart
// authoritatively at settlement time.
func (s *CheckoutService) CreateIntent(ctx context.Context, principal domain.Principal) (*IntentSummary, error) {
	items, err := s.carts.FindByUser(principal.UserID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	total := decimal.Zero
	for _, item := range items {
		if item.Product == nil {
			return nil, ErrNotFound
		}
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(item.Quantity)))
	}
	amountCents := toMinorUnits(total)

	intent, err := s.gateway.CreateIntent(ctx, amountCents, checkoutCurrency, map[string]string{
		"user_id":    strconv.FormatUint(principal.UserID, 10),
		"user_email": principal.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentGateway, err)
	}
	if intent == nil {
		return nil, fmt.Errorf("%w: no intent returned", ErrPaymentGateway)
	}

	return &IntentSummary{
		ClientSecret: intent.ClientSecret,
		AmountCents:  amountCents,
	}, nil
}

// Confirm verifies settlement with the gateway and then materializes the
// order: order + item snapshots + stock decrements + cart clearing commit as
// one unit or not at all. An already-consumed cart surfaces as ErrEmptyCart,
// which doubles as the duplicate-confirmation guard.
func (s *CheckoutService) Confirm(ctx context.Context, principal domain.Principal, intentID, shippingAddress string) (*domain.Order, error) {
	if intentID == "" || shippingAddress == "" {
		return nil, ErrInvalidInput
	}

	intent, err := s.gateway.GetIntent(ctx, intentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentGateway, err)
	}
	if intent == nil {
		return nil, ErrNotFound
	}
	if !intent.Settled() {
		return nil, ErrPaymentNotSettled
	}

	var order *domain.Order
	err = s.store.InTransaction(ctx, func(tx repository.CheckoutTx) error {
		items, err := tx.CartItemsForUpdate(principal.UserID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		total := decimal.Zero
		orderItems := make([]domain.OrderItem, 0, len(items))
		for _, item := range items {
			product, err := tx.ProductForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				log.Printf("checkout: product %d vanished during confirm for user %d", item.ProductID, principal.UserID)
				return ErrStockIntegrity
			}
			total = total.Add(product.Price.Mul(decimal.NewFromInt(item.Quantity)))
			orderItems = append(orderItems, domain.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     product.Price,
			})
		}

		order = &domain.Order{
			UserID:          principal.UserID,
			TotalAmount:     total,
			Status:          domain.StatusPaid,
			PaymentIntentID: intentID,
			ShippingAddress: shippingAddress,
		}
		if err := tx.CreateOrder(order); err != nil {
			return err
		}

		for i := range orderItems {
			orderItems[i].OrderID = order.ID
		}
		if err := tx.CreateOrderItems(orderItems); err != nil {
			return err
		}

		for _, item := range items {
			if err := tx.DecrementStock(item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, repository.ErrStockConflict) {
					log.Printf("checkout: stock integrity fault on product %d (qty %d, user %d, intent %s)",
						item.ProductID, item.Quantity, principal.UserID, intentID)
					return ErrStockIntegrity
				}
				return err
			}
		}

		if err := tx.ClearCart(principal.UserID); err != nil {
			return err
		}

		order.Items = orderItems
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.publishOrderPaidEvent(context.Background(), order)

	return order, nil
}

func (s *CheckoutService) publishOrderPaidEvent(ctx context.Context, order *domain.Order) {
	evt := domain.OrderPaidEvent{
		EventID:    uuid.NewString(),
		OrderID:    order.ID,
		UserID:     order.UserID,
		TotalCents: toMinorUnits(order.TotalAmount),
		CreatedAt:  time.Now(),
	}
	for _, item := range order.Items {
		evt.Items = append(evt.Items, domain.OrderPaidItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price.StringFixed(2),
		})
	}

	if err := s.publisher.Publish(ctx, "order.paid", evt); err != nil {
		log.Printf("Failed to publish order.paid event for order %d: %v", order.ID, err)
	}
}

// toMinorUnits converts a decimal amount to the smallest currency unit by
// multiplying by 100 and truncating.
func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}

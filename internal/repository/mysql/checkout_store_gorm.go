package mysql

import (
	"context"
	"errors"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type checkoutStore struct {
	db *gorm.DB
}

func NewCheckoutStore(db *gorm.DB) repository.CheckoutStore {
	return &checkoutStore{db: db}
}

func (s *checkoutStore) InTransaction(ctx context.Context, fn func(tx repository.CheckoutTx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&checkoutTx{db: tx})
	})
}

type checkoutTx struct {
	db *gorm.DB
}

// Cart rows are locked before anything else so that a concurrent confirm of
// the same cart blocks here and then observes the rows already deleted.
func (t *checkoutTx) CartItemsForUpdate(userID uint64) ([]domain.CartItem, error) {
	var out []domain.CartItem
	err := t.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("added_at, id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (t *checkoutTx) ProductForUpdate(id uint64) (*domain.Product, error) {
	var p domain.Product
	err := t.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (t *checkoutTx) CreateOrder(order *domain.Order) error {
	if err := t.db.Create(order).Error; err != nil {
		return err
	}
	if order.ID == 0 {
		return errors.New("order created but no ID assigned")
	}
	return nil
}

func (t *checkoutTx) CreateOrderItems(items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return t.db.Create(&items).Error
}

func (t *checkoutTx) DecrementStock(productID uint64, qty int64) error {
	res := t.db.Model(&domain.Product{}).
		Where("id = ? AND stock_quantity >= ?", productID, qty).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrStockConflict
	}
	return nil
}

func (t *checkoutTx) ClearCart(userID uint64) error {
	return t.db.Where("user_id = ?", userID).Delete(&domain.CartItem{}).Error
}

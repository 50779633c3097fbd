package mysql

import (
	"errors"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) Save(item *domain.CartItem) error {
	return r.db.Create(item).Error
}

func (r *cartRepo) Update(item *domain.CartItem) error {
	return r.db.Model(&domain.CartItem{ID: item.ID}).Update("quantity", item.Quantity).Error
}

func (r *cartRepo) Delete(id uint64) error {
	return r.db.Delete(&domain.CartItem{}, id).Error
}

func (r *cartRepo) FindByID(id uint64) (*domain.CartItem, error) {
	var item domain.CartItem
	if err := r.db.Preload("Product").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) FindByUserAndProduct(userID, productID uint64) (*domain.CartItem, error) {
	var item domain.CartItem
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) FindByUser(userID uint64) ([]domain.CartItem, error) {
	var out []domain.CartItem
	err := r.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("added_at, id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `json:"description" gorm:"type:text"`
}

// Product rows are never deleted, only deactivated via IsActive.
type Product struct {
	ID            uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string          `json:"name" gorm:"type:varchar(100);not null"`
	Description   string          `json:"description" gorm:"type:text"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	StockQuantity int64           `json:"stockQuantity" gorm:"not null;default:0"`
	ImageFilename string          `json:"imageFilename,omitempty" gorm:"type:varchar(100)"`
	CategoryID    uint64          `json:"categoryId" gorm:"not null;index"`
	CreatedAt     time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	IsActive      bool            `json:"isActive" gorm:"not null;default:true"`
}

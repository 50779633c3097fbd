package domain

import "time"

type OrderPaidItem struct {
	ProductID uint64 `json:"productId"`
	Quantity  int64  `json:"quantity"`
	Price     string `json:"price"`
}

type OrderPaidEvent struct {
	EventID    string          `json:"eventId"`
	OrderID    uint64          `json:"orderId"`
	UserID     uint64          `json:"userId"`
	TotalCents int64           `json:"totalCents"`
	Items      []OrderPaidItem `json:"items"`
	CreatedAt  time.Time       `json:"createdAt"`
}

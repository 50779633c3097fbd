package http

type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AddToCartRequest struct {
	ProductID uint64 `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity *int64 `json:"quantity" binding:"required,min=0"`
}

type ConfirmCheckoutRequest struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
	ShippingAddress string `json:"shippingAddress" binding:"required"`
}

type CartLineResponse struct {
	ID        uint64          `json:"id"`
	ProductID uint64          `json:"productId"`
	Quantity  int64           `json:"quantity"`
	Subtotal  string          `json:"subtotal"`
	Product   *ProductSummary `json:"product,omitempty"`
}

type ProductSummary struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

type IntentResponse struct {
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
}

type ConfirmResponse struct {
	OrderID uint64 `json:"orderId"`
}

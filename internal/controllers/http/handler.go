package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"storefront-service/internal/metrics"
	"storefront-service/internal/repository"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	catalog  *services.CatalogService
	cart     *services.CartService
	checkout *services.CheckoutService
	orders   *services.OrderService
	auth     *services.AuthService
}

func NewHandler(catalog *services.CatalogService, cart *services.CartService, checkout *services.CheckoutService, orders *services.OrderService, auth *services.AuthService) *Handler {
	return &Handler{
		catalog:  catalog,
		cart:     cart,
		checkout: checkout,
		orders:   orders,
		auth:     auth,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, m *metrics.ServerMetrics) {
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := r.Group("/api/v1")
	v1.Use(Instrument(m))

	v1.GET("/health", h.Health)
	v1.GET("/products", h.ListProducts)
	v1.GET("/products/:id", h.GetProduct)
	v1.GET("/categories", h.ListCategories)
	v1.GET("/categories/:id", h.GetCategory)
	v1.POST("/auth/register", h.Register)
	v1.POST("/auth/login", h.Login)

	authed := v1.Group("")
	authed.Use(AuthRequired(h.auth))
	authed.GET("/auth/profile", h.Profile)
	authed.GET("/cart", h.GetCart)
	authed.POST("/cart", h.AddToCart)
	authed.PUT("/cart/items/:id", h.UpdateCartItem)
	authed.DELETE("/cart/items/:id", h.RemoveCartItem)
	authed.POST("/checkout/intent", h.CreateIntent)
	authed.POST("/checkout/confirm", h.ConfirmCheckout)
	authed.GET("/orders", h.ListOrders)
	authed.GET("/orders/:id", h.GetOrder)
	authed.GET("/admin/orders", h.AdminOrders)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "storefront API is running"})
}

func (h *Handler) ListProducts(c *gin.Context) {
	categoryID, _ := strconv.ParseUint(c.Query("category"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	products, err := h.catalog.ListProducts(c.Request.Context(), repository.ProductFilter{
		CategoryID: categoryID,
		Search:     c.Query("search"),
		Limit:      limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) GetCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	category, err := h.catalog.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), services.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "username": user.Username})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) Profile(c *gin.Context) {
	principal := currentPrincipal(c)
	user, err := h.auth.Profile(c.Request.Context(), principal.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) GetCart(c *gin.Context) {
	principal := currentPrincipal(c)
	lines, err := h.cart.List(c.Request.Context(), principal.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]CartLineResponse, 0, len(lines))
	for _, line := range lines {
		resp := CartLineResponse{
			ID:        line.Item.ID,
			ProductID: line.Item.ProductID,
			Quantity:  line.Item.Quantity,
			Subtotal:  line.Subtotal.StringFixed(2),
		}
		if line.Item.Product != nil {
			resp.Product = &ProductSummary{
				ID:    line.Item.Product.ID,
				Name:  line.Item.Product.Name,
				Price: line.Item.Product.Price.StringFixed(2),
			}
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal := currentPrincipal(c)
	if err := h.cart.Add(c.Request.Context(), principal.UserID, req.ProductID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "item added to cart"})
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal := currentPrincipal(c)
	if err := h.cart.SetQuantity(c.Request.Context(), principal.UserID, itemID, *req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart updated"})
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	principal := currentPrincipal(c)
	if err := h.cart.Remove(c.Request.Context(), principal.UserID, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item removed from cart"})
}

func (h *Handler) CreateIntent(c *gin.Context) {
	principal := currentPrincipal(c)
	summary, err := h.checkout.CreateIntent(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, IntentResponse{
		ClientSecret: summary.ClientSecret,
		Amount:       summary.AmountCents,
	})
}

func (h *Handler) ConfirmCheckout(c *gin.Context) {
	var req ConfirmCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal := currentPrincipal(c)
	order, err := h.checkout.Confirm(c.Request.Context(), principal, req.PaymentIntentID, req.ShippingAddress)
	if err != nil {
		respondError(c, err)
		return
	}

	// Stock moved; drop stale cached product reads.
	ids := make([]uint64, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.ProductID)
	}
	h.catalog.InvalidateProducts(c.Request.Context(), ids)

	c.JSON(http.StatusOK, ConfirmResponse{OrderID: order.ID})
}

func (h *Handler) ListOrders(c *gin.Context) {
	principal := currentPrincipal(c)
	orders, err := h.orders.ListOrders(c.Request.Context(), principal.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	principal := currentPrincipal(c)
	order, err := h.orders.GetOrder(c.Request.Context(), principal.UserID, orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) AdminOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	principal := currentPrincipal(c)
	orders, err := h.orders.ListRecentOrders(c.Request.Context(), principal, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// respondError maps the service error taxonomy to HTTP statuses. Anything
// unrecognized is a 500 and gets logged rather than leaked.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrUnavailable),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrPaymentNotSettled):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrPaymentGateway):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrStockIntegrity):
		log.Printf("stock integrity fault surfaced to client: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

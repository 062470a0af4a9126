package handler

import (
	"errors"
	"math"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/podstore/podstore/internal/models"
	"github.com/podstore/podstore/internal/service"
	"github.com/podstore/podstore/internal/utils"
)

// cartCookie identifies a visitor's cart. Carts belong to the browser
// session, not the account, so anonymous shoppers get one too.
const cartCookie = "cart_id"

const cartCookieMaxAge = 60 * 60 * 24 * 30

// CartHandler exposes the cart endpoints.
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler constructs a CartHandler.
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// cartID returns the visitor's cart ID, minting the cookie on first touch.
func (h *CartHandler) cartID(c *gin.Context) string {
	if id, err := c.Cookie(cartCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetCookie(cartCookie, id, cartCookieMaxAge, "/", "", false, true)
	return id
}

// cartView renders a cart with its derived totals. The total is rounded
// to two fraction digits here, at display time only.
func cartView(cart *models.Cart) gin.H {
	items := cart.Items
	if items == nil {
		items = []models.CartItem{}
	}
	return gin.H{
		"items": items,
		"total": math.Round(cart.Total()*100) / 100,
		"count": cart.Count(),
	}
}

// GetCart handles GET /v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.cartService.Get(c.Request.Context(), h.cartID(c))
	if err != nil {
		utils.Error(c, 503, "CART_UNAVAILABLE", "Failed to load cart")
		return
	}
	utils.Success(c, 200, "Cart retrieved", cartView(cart))
}

// AddItem handles POST /v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), h.cartID(c), req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrProductNotFound):
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		case errors.Is(err, utils.ErrOutOfStock):
			utils.Error(c, 409, "OUT_OF_STOCK", "Product is out of stock")
		default:
			utils.Error(c, 503, "CART_UNAVAILABLE", "Failed to update cart")
		}
		return
	}

	utils.Success(c, 200, "Item added", cartView(cart))
}

// UpdateItem handles PATCH /v1/cart/items/:productId. The delta may be any
// integer; quantities at or below zero remove the item.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	cart, err := h.cartService.Adjust(c.Request.Context(), h.cartID(c), c.Param("productId"), req.Delta)
	if err != nil {
		utils.Error(c, 503, "CART_UNAVAILABLE", "Failed to update cart")
		return
	}

	utils.Success(c, 200, "Cart updated", cartView(cart))
}

// ClearCart handles DELETE /v1/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.cartService.Clear(c.Request.Context(), h.cartID(c)); err != nil {
		utils.Error(c, 503, "CART_UNAVAILABLE", "Failed to clear cart")
		return
	}
	utils.Success(c, 200, "Cart cleared", nil)
}

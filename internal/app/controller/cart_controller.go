package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/jewel-storefront/internal/app/model"
	"github.com/ikkim/jewel-storefront/internal/app/service"
	apperrors "github.com/ikkim/jewel-storefront/internal/errors"
	"github.com/ikkim/jewel-storefront/internal/middleware"
	"github.com/ikkim/jewel-storefront/internal/pricing"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID int `json:"product_id" binding:"required,gt=0"`
}

type UpdateCartRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type ApplyPromoRequest struct {
	Code string `json:"code" binding:"required"`
}

// GetCart returns the session's cart
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	items, err := ctrl.cartService.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, err, "cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart_items": items,
		"count":      model.ItemCount(items),
	})
}

// AddToCart adds a new line for the product
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	ctrl.add(c, ctrl.cartService.AddProduct)
}

// AddFromWishlist merges the product into the cart
// POST /api/v1/cart/from-wishlist
func (ctrl *CartController) AddFromWishlist(c *gin.Context) {
	ctrl.add(c, ctrl.cartService.AddFromWishlist)
}

func (ctrl *CartController) add(c *gin.Context, addFn func(ctx context.Context, sessionID string, productID int) (*model.CartItem, error)) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	line, err := addFn(c.Request.Context(), sessionID, req.ProductID)
	if err != nil {
		respondServiceError(c, err, "cart")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Added to cart",
		"cart_item": line,
	})
}

// UpdateCartItem sets a line's quantity; zero removes it
// PUT /api/v1/cart/:id
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update cart request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	items, err := ctrl.cartService.UpdateQuantity(c.Request.Context(), sessionID, c.Param("id"), *req.Quantity)
	if err != nil {
		respondServiceError(c, err, "cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart_items": items,
		"count":      model.ItemCount(items),
	})
}

// RemoveFromCart removes a line
// DELETE /api/v1/cart/:id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	items, err := ctrl.cartService.RemoveItem(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart_items": items,
		"count":      model.ItemCount(items),
	})
}

// ApplyPromo applies a promo code to the cart
// POST /api/v1/cart/promo
func (ctrl *CartController) ApplyPromo(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	var req ApplyPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.PromoInvalid, "Invalid promo code")
		return
	}

	promo, err := ctrl.cartService.ApplyPromo(c.Request.Context(), sessionID, req.Code)
	if err != nil {
		respondServiceError(c, err, "cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"promo": promo,
	})
}

// GetSummary prices the cart
// GET /api/v1/cart/summary?shipping=standard|express
func (ctrl *CartController) GetSummary(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	method, err := pricing.ParseShippingMethod(c.Query("shipping"))
	if err != nil {
		apperrors.RespondWithValidationError(c, map[string]string{
			"shipping": "must be standard or express",
		})
		return
	}

	summary, err := ctrl.cartService.Summary(c.Request.Context(), sessionID, method)
	if err != nil {
		respondServiceError(c, err, "cart")
		return
	}

	c.JSON(http.StatusOK, summary)
}

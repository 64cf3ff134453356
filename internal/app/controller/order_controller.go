package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/jewel-storefront/internal/app/model"
	"github.com/ikkim/jewel-storefront/internal/app/service"
	apperrors "github.com/ikkim/jewel-storefront/internal/errors"
	"github.com/ikkim/jewel-storefront/internal/middleware"
)

type OrderController struct {
	checkoutService   service.CheckoutService
	emptyCartRedirect time.Duration
}

// NewOrderController wires checkout. emptyCartRedirect is the pause the
// client should show before sending the user back to the cart.
func NewOrderController(checkoutService service.CheckoutService, emptyCartRedirect time.Duration) *OrderController {
	return &OrderController{
		checkoutService:   checkoutService,
		emptyCartRedirect: emptyCartRedirect,
	}
}

// redirectToCart tells the client to show the empty-cart notice and go back
// to the cart
func (ctrl *OrderController) redirectToCart(c *gin.Context) {
	apperrors.RespondWithRedirect(c, http.StatusConflict, apperrors.CartEmpty,
		"Your cart is empty", "/cart", ctrl.emptyCartRedirect.Milliseconds())
}

// GetCheckout returns the checkout form prefilled from the signed-in user
// GET /api/v1/checkout
func (ctrl *OrderController) GetCheckout(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	form, err := ctrl.checkoutService.Prefill(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			ctrl.redirectToCart(c)
			return
		}
		respondServiceError(c, err, "checkout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"form": form,
	})
}

// PlaceOrder turns the cart into an order
// POST /api/v1/checkout
func (ctrl *OrderController) PlaceOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	var form model.ShippingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		log.Warn("Invalid checkout request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	order, err := ctrl.checkoutService.PlaceOrder(c.Request.Context(), sessionID, form)
	if err != nil {
		var formErr *service.ShippingFormError
		switch {
		case errors.As(err, &formErr):
			fields := make(map[string]string, len(formErr.Missing))
			for _, name := range formErr.Missing {
				fields[name] = "required"
			}
			apperrors.RespondWithValidationError(c, fields)
		case errors.Is(err, service.ErrInvalidShippingForm):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid shipping or payment method")
		case errors.Is(err, service.ErrEmptyCart):
			ctrl.redirectToCart(c)
		default:
			respondServiceError(c, err, "checkout")
		}
		return
	}

	log.Info("Order placed", map[string]interface{}{
		"order_id": order.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GetOrders lists the session's orders, newest first
// GET /api/v1/orders
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	orders, err := ctrl.checkoutService.ListOrders(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, err, "order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrderByID returns one order
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	order, err := ctrl.checkoutService.GetOrder(c.Request.Context(), sessionID, id)
	if err != nil {
		respondServiceError(c, err, "order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

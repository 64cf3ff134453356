package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/jewel-storefront/internal/app/service"
	apperrors "github.com/ikkim/jewel-storefront/internal/errors"
	"github.com/ikkim/jewel-storefront/internal/middleware"
)

// requireSession returns the request's session id, answering 401 when the
// session middleware did not run
func requireSession(c *gin.Context) (string, bool) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		middleware.GetLoggerFromContext(c).Warn("Request without session")
		apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthSessionInvalid, "Session required")
		return "", false
	}
	return sessionID, true
}

// respondServiceError maps service sentinels to API errors; anything else
// goes through the generic parser
func respondServiceError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
	case errors.Is(err, service.ErrCartItemNotFound):
		apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
	case errors.Is(err, service.ErrOrderNotFound):
		apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
	case errors.Is(err, service.ErrInvalidPromoCode):
		apperrors.BadRequest(c, apperrors.PromoInvalid, "Invalid promo code")
	case errors.Is(err, service.ErrInvalidCredentials):
		apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Invalid email or password")
	case errors.Is(err, service.ErrEmailAlreadyExists):
		apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "An account with this email already exists")
	case errors.Is(err, service.ErrInvalidSignup):
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Email and password are required")
	case errors.Is(err, service.ErrReportUploadDisabled):
		apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.ReportUploadDisabled, "Report upload is not configured")
	default:
		middleware.GetLoggerFromContext(c).Error("Request failed", err, map[string]interface{}{
			"action": action,
		})
		apperrors.ParseAndRespond(c, err, action)
	}
}

package errors

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrorInfo is a parsed infrastructure error
type ErrorInfo struct {
	Status  int
	Code    string
	Message string
}

// ParseError maps infrastructure errors (session store, context, network)
// to a status, code and message safe to show the client.
// Domain sentinel errors are handled by the controllers before this.
func ParseError(err error, action string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    InternalServerError,
			Message: defaultMessage(action),
		}
	}

	// 1. request lifecycle
	if errors.Is(err, context.Canceled) {
		return ErrorInfo{
			Status:  499,
			Code:    RequestCancelled,
			Message: "Request was cancelled",
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorInfo{
			Status:  http.StatusGatewayTimeout,
			Code:    RequestCancelled,
			Message: "Request timed out",
		}
	}

	// 2. session store backends
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, redis.Nil) {
		return ErrorInfo{
			Status:  http.StatusNotFound,
			Code:    ResourceNotFound,
			Message: "The requested data was not found",
		}
	}

	errLower := strings.ToLower(err.Error())

	// 3. network / connection
	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "i/o timeout") {
		return ErrorInfo{
			Status:  http.StatusServiceUnavailable,
			Code:    InternalStoreError,
			Message: "Storage is unavailable. Please try again shortly",
		}
	}

	// 4. fallback
	return ErrorInfo{
		Status:  http.StatusInternalServerError,
		Code:    InternalServerError,
		Message: defaultMessage(action),
	}
}

func defaultMessage(action string) string {
	actionLower := strings.ToLower(action)

	switch {
	case strings.Contains(actionLower, "cart"):
		return "Could not update your cart. Please try again"
	case strings.Contains(actionLower, "wishlist"):
		return "Could not update your wishlist. Please try again"
	case strings.Contains(actionLower, "order"), strings.Contains(actionLower, "checkout"):
		return "Could not process your order. Please try again"
	case strings.Contains(actionLower, "report"):
		return "Could not build the report. Please try again"
	}
	return "Something went wrong. Please try again later"
}

// ParseAndRespond parses err and writes the response
func ParseAndRespond(c interface {
	AbortWithStatusJSON(int, interface{})
}, err error, action string) {
	info := ParseError(err, action)
	c.AbortWithStatusJSON(info.Status, ErrorResponse{
		Error:   info.Code,
		Message: info.Message,
	})
}

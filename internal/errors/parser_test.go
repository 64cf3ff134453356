package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		action     string
		wantStatus int
		wantCode   string
	}{
		{"nil", nil, "cart", http.StatusInternalServerError, InternalServerError},
		{"cancelled", fmt.Errorf("wait: %w", context.Canceled), "checkout", 499, RequestCancelled},
		{"deadline", context.DeadlineExceeded, "checkout", http.StatusGatewayTimeout, RequestCancelled},
		{"gorm not found", gorm.ErrRecordNotFound, "cart", http.StatusNotFound, ResourceNotFound},
		{"redis nil", fmt.Errorf("get: %w", redis.Nil), "cart", http.StatusNotFound, ResourceNotFound},
		{"connection refused", errors.New("dial tcp 127.0.0.1:6379: connect: connection refused"), "cart", http.StatusServiceUnavailable, InternalStoreError},
		{"unknown", errors.New("boom"), "wishlist", http.StatusInternalServerError, InternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseError(tt.err, tt.action)
			assert.Equal(t, tt.wantStatus, info.Status)
			assert.Equal(t, tt.wantCode, info.Code)
			assert.NotEmpty(t, info.Message)
		})
	}
}

func TestParseError_MessageFollowsAction(t *testing.T) {
	assert.Contains(t, ParseError(errors.New("x"), "update cart").Message, "cart")
	assert.Contains(t, ParseError(errors.New("x"), "place order").Message, "order")
}

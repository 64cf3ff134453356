package service

import (
	"errors"
	"strings"
)

var (
	ErrInvalidPromoCode    = errors.New("invalid promo code")
	ErrProductNotFound     = errors.New("product not found")
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidShippingForm = errors.New("invalid shipping form")
	ErrInvalidSignup       = errors.New("email and password are required")
)

// ShippingFormError lists the required checkout fields left blank
type ShippingFormError struct {
	Missing []string
}

func (e *ShippingFormError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

func (e *ShippingFormError) Unwrap() error {
	return ErrInvalidShippingForm
}

package model

import (
	"fmt"
	"strings"

	"github.com/ikkim/jewel-storefront/internal/pricing"
)

type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentPaypal PaymentMethod = "paypal"
)

// ShippingForm is the checkout form as submitted
type ShippingForm struct {
	Email          string                 `json:"email"`
	FirstName      string                 `json:"first_name"`
	LastName       string                 `json:"last_name"`
	Address        string                 `json:"address"`
	City           string                 `json:"city"`
	State          string                 `json:"state"`
	ZipCode        string                 `json:"zip_code"`
	Country        string                 `json:"country"`
	Phone          string                 `json:"phone"`
	PaymentMethod  PaymentMethod          `json:"payment_method"`
	CardNumber     string                 `json:"card_number,omitempty"`
	ExpiryDate     string                 `json:"expiry_date,omitempty"`
	CVV            string                 `json:"cvv,omitempty"`
	NameOnCard     string                 `json:"name_on_card,omitempty"`
	SaveInfo       bool                   `json:"save_info"`
	ShippingMethod pricing.ShippingMethod `json:"shipping_method"`
}

// WithDefaults fills the fields the checkout form pre-selects
func (f ShippingForm) WithDefaults() ShippingForm {
	if f.Country == "" {
		f.Country = "US"
	}
	if f.PaymentMethod == "" {
		f.PaymentMethod = PaymentCard
	}
	if f.ShippingMethod == "" {
		f.ShippingMethod = pricing.ShippingStandard
	}
	return f
}

// MissingFields returns the json names of required fields left blank.
// Only presence is checked.
func (f ShippingForm) MissingFields() []string {
	required := []struct {
		name  string
		value string
	}{
		{"email", f.Email},
		{"first_name", f.FirstName},
		{"last_name", f.LastName},
		{"address", f.Address},
		{"city", f.City},
		{"zip_code", f.ZipCode},
	}
	if f.PaymentMethod == PaymentCard {
		required = append(required, []struct {
			name  string
			value string
		}{
			{"card_number", f.CardNumber},
			{"expiry_date", f.ExpiryDate},
			{"cvv", f.CVV},
			{"name_on_card", f.NameOnCard},
		}...)
	}

	var missing []string
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

// Snapshot is the copy stored on an order: the cvv is dropped and the
// card number reduced to its last four digits
func (f ShippingForm) Snapshot() ShippingForm {
	f.CVV = ""
	if n := len(f.CardNumber); n > 4 {
		f.CardNumber = strings.Repeat("*", n-4) + f.CardNumber[n-4:]
	}
	return f
}

func (f ShippingForm) Validate() error {
	if f.ShippingMethod != "" && !f.ShippingMethod.Valid() {
		return fmt.Errorf("%w: shipping method %q", ErrInvalidRecord, f.ShippingMethod)
	}
	switch f.PaymentMethod {
	case "", PaymentCard, PaymentPaypal:
	default:
		return fmt.Errorf("%w: payment method %q", ErrInvalidRecord, f.PaymentMethod)
	}
	return nil
}

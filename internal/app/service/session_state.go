package service

import (
	"context"
	"sync"
	"time"

	"github.com/ikkim/jewel-storefront/internal/events"
	"github.com/ikkim/jewel-storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

// AppliedPromo is a promo code accepted for a session's cart
type AppliedPromo struct {
	Code       string          `json:"code"`
	Fraction   decimal.Decimal `json:"fraction"`
	PercentOff int64           `json:"percent_off"`
}

// PromoRegistry remembers the promo applied per session. Like the cart
// page's own state it is not persisted and is cleared at checkout.
type PromoRegistry struct {
	mu      sync.RWMutex
	applied map[string]AppliedPromo
}

func NewPromoRegistry() *PromoRegistry {
	return &PromoRegistry{applied: make(map[string]AppliedPromo)}
}

func (r *PromoRegistry) Apply(sessionID string, promo AppliedPromo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied[sessionID] = promo
}

func (r *PromoRegistry) Get(sessionID string) (AppliedPromo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	promo, ok := r.applied[sessionID]
	return promo, ok
}

func (r *PromoRegistry) Clear(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.applied, sessionID)
}

// Fraction is the applied discount, zero when none
func (r *PromoRegistry) Fraction(sessionID string) decimal.Decimal {
	if promo, ok := r.Get(sessionID); ok {
		return promo.Fraction
	}
	return decimal.Zero
}

// wait blocks for d or until ctx is done, whichever comes first
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// notifier tells other views of a session that a key was rewritten
type notifier struct {
	broker events.Broker
}

func (n notifier) changed(ctx context.Context, sessionID, key string) {
	if n.broker == nil {
		return
	}
	// the write already happened; deliver even if the caller went away
	err := n.broker.Publish(context.WithoutCancel(ctx), events.Notification{
		SessionID: sessionID,
		Key:       key,
	})
	if err != nil {
		logger.Warn("Failed to publish store notification", map[string]interface{}{
			"session_id": sessionID,
			"key":        key,
			"error":      err.Error(),
		})
	}
}

// Package kv is the per-session key-value store standing in for a
// browser's local storage. Values are JSON strings; last writer wins.
package kv

import (
	"context"
	"fmt"
)

// Store is the get/set/remove contract every backend implements
type Store interface {
	// Get returns the value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Keys of the persisted session collections
const (
	KeyCart     = "cart"
	KeyWishlist = "wishlist"
	KeyOrders   = "orders"
	KeyUser     = "user"
	KeyUsers    = "users"
)

// SessionKey is the backend key of a session-scoped key
func SessionKey(sessionID, key string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, key)
}

type namespaced struct {
	store     Store
	sessionID string
}

// Namespace scopes store to one session so that sessions never see
// each other's keys
func Namespace(store Store, sessionID string) Store {
	return &namespaced{store: store, sessionID: sessionID}
}

func (n *namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.store.Get(ctx, SessionKey(n.sessionID, key))
}

func (n *namespaced) Set(ctx context.Context, key, value string) error {
	return n.store.Set(ctx, SessionKey(n.sessionID, key), value)
}

func (n *namespaced) Remove(ctx context.Context, key string) error {
	return n.store.Remove(ctx, SessionKey(n.sessionID, key))
}

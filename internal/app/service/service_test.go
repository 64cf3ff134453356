package service

import (
	"testing"
	"time"

	"github.com/ikkim/jewel-storefront/internal/app/model"
	"github.com/ikkim/jewel-storefront/internal/app/repository"
	"github.com/ikkim/jewel-storefront/internal/catalog"
	"github.com/ikkim/jewel-storefront/internal/events"
	"github.com/ikkim/jewel-storefront/internal/kv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSession = "session-1"

type testEnv struct {
	store     *kv.MemoryStore
	broker    *events.LocalBroker
	promos    *PromoRegistry
	catalog   *catalog.Catalog
	cartRepo  repository.CartRepository
	wishRepo  repository.WishlistRepository
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	cart      CartService
	wishlist  WishlistService
	checkout  *checkoutService
	auth      AuthService
}

func testCatalog() *catalog.Catalog {
	return catalog.New([]model.Product{
		{ID: 1, Name: "Gold Band", Price: decimal.NewFromInt(100), Rating: 4.5, Category: model.CategoryRings, Material: model.MaterialGold},
		{ID: 2, Name: "Silver Chain", Price: decimal.NewFromInt(50), Rating: 4.2, Category: model.CategoryNecklaces, Material: model.MaterialSilver},
		{ID: 3, Name: "Platinum Studs", Price: decimal.NewFromInt(600), Rating: 4.9, Category: model.CategoryEarrings, Material: model.MaterialPlatinum},
	})
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		store:   kv.NewMemoryStore(),
		broker:  events.NewLocalBroker(),
		promos:  NewPromoRegistry(),
		catalog: testCatalog(),
	}
	env.cartRepo = repository.NewCartRepository(env.store)
	env.wishRepo = repository.NewWishlistRepository(env.store)
	env.orderRepo = repository.NewOrderRepository(env.store)
	env.userRepo = repository.NewUserRepository(env.store)

	env.cart = NewCartService(env.cartRepo, env.catalog, env.promos, env.broker)
	env.wishlist = NewWishlistService(env.wishRepo, env.catalog, env.broker)
	env.checkout = NewCheckoutService(env.cartRepo, env.orderRepo, env.userRepo, env.promos, env.broker, CheckoutConfig{}).(*checkoutService)
	env.auth = NewAuthService(env.userRepo, env.broker, AuthConfig{})
	return env
}

func (env *testEnv) subscribe(t *testing.T) *events.Subscription {
	t.Helper()
	sub, err := env.broker.Subscribe(testSession)
	require.NoError(t, err)
	t.Cleanup(sub.Close)
	return sub
}

func nextKey(t *testing.T, sub *events.Subscription) string {
	t.Helper()
	select {
	case n := <-sub.C:
		return n.Key
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for notification")
		return ""
	}
}

func validForm() model.ShippingForm {
	return model.ShippingForm{
		Email:      "jane@example.com",
		FirstName:  "Jane",
		LastName:   "Doe",
		Address:    "1 Main St",
		City:       "Springfield",
		ZipCode:    "12345",
		CardNumber: "4111111111111111",
		ExpiryDate: "12/30",
		CVV:        "123",
		NameOnCard: "Jane Doe",
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}

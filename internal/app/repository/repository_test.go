package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ikkim/jewel-storefront/internal/app/model"
	"github.com/ikkim/jewel-storefront/internal/db"
	"github.com/ikkim/jewel-storefront/internal/kv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSession = "session-1"

func testProduct(id int) model.Product {
	return model.Product{
		ID:       id,
		Name:     "Test Ring",
		Price:    decimal.RequireFromString("100.00"),
		Rating:   4.5,
		Category: model.CategoryRings,
		Material: model.MaterialGold,
	}
}

func TestCartRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository(kv.NewMemoryStore())

	items, err := repo.FindBySession(ctx, testSession)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)

	cart := []model.CartItem{
		{Product: testProduct(1), LineID: "a", Quantity: 2},
		{Product: testProduct(1), LineID: "b", Quantity: 1},
	}
	require.NoError(t, repo.Save(ctx, testSession, cart))

	items, err = repo.FindBySession(ctx, testSession)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].LineID)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("100")))

	require.NoError(t, repo.Clear(ctx, testSession))
	items, err = repo.FindBySession(ctx, testSession)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartRepository_MalformedFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	repo := NewCartRepository(store)

	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{{{`},
		{"wrong shape", `{"id":1}`},
		{"zero quantity line", `[{"id":1,"name":"Ring","price":"10","category":"rings","material":"gold","line_id":"x","quantity":0}]`},
		{"unknown category", `[{"id":1,"name":"Ring","price":"10","category":"hats","material":"gold","line_id":"x","quantity":1}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, store.Set(ctx, kv.SessionKey(testSession, kv.KeyCart), tt.raw))

			items, err := repo.FindBySession(ctx, testSession)
			require.NoError(t, err)
			assert.Empty(t, items)
		})
	}
}

func TestCartRepository_AcceptsNumericPrices(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	repo := NewCartRepository(store)

	raw := `[{"id":2,"name":"Pearl Drop Earrings","price":899.99,"category":"earrings","material":"silver","rating":4.8,"line_id":"x","quantity":1}]`
	require.NoError(t, store.Set(ctx, kv.SessionKey(testSession, kv.KeyCart), raw))

	items, err := repo.FindBySession(ctx, testSession)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("899.99")))
}

func TestWishlistRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewWishlistRepository(kv.NewMemoryStore())

	require.NoError(t, repo.Save(ctx, testSession, []model.Product{testProduct(1), testProduct(2)}))

	items, err := repo.FindBySession(ctx, testSession)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestOrderRepository_PrependKeepsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(kv.NewMemoryStore())

	for _, id := range []int64{1000, 2000, 3000} {
		require.NoError(t, repo.Prepend(ctx, testSession, model.Order{
			ID:     id,
			Items:  []model.CartItem{{Product: testProduct(1), LineID: "a", Quantity: 1}},
			Total:  decimal.NewFromInt(100),
			Status: model.OrderStatusConfirmed,
			Date:   time.UnixMilli(id),
		}))
	}

	orders, err := repo.FindBySession(ctx, testSession)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, []int64{3000, 2000, 1000}, []int64{orders[0].ID, orders[1].ID, orders[2].ID})

	order, err := repo.FindByID(ctx, testSession, 2000)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), order.ID)

	_, err = repo.FindByID(ctx, testSession, 42)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderRepository_InvalidEntryDoesNotDropOthers(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	repo := NewOrderRepository(store)

	stored := []interface{}{}
	for _, id := range []int64{3000, 2000, 1000} {
		stored = append(stored, model.Order{
			ID:     id,
			Items:  []model.CartItem{{Product: testProduct(1), LineID: "a", Quantity: 1}},
			Total:  decimal.NewFromInt(100),
			Status: model.OrderStatusConfirmed,
			Date:   time.UnixMilli(id),
		})
	}
	stored = append(stored, map[string]interface{}{"id": 1, "status": "refunded"})
	raw, err := json.Marshal(stored)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, kv.SessionKey(testSession, kv.KeyOrders), string(raw)))

	orders, err := repo.FindBySession(ctx, testSession)
	require.NoError(t, err)
	assert.Len(t, orders, 3)

	require.NoError(t, repo.Prepend(ctx, testSession, model.Order{
		ID:     4000,
		Total:  decimal.NewFromInt(50),
		Status: model.OrderStatusConfirmed,
		Date:   time.UnixMilli(4000),
	}))

	orders, err = repo.FindBySession(ctx, testSession)
	require.NoError(t, err)
	require.Len(t, orders, 4)
	assert.Equal(t, []int64{4000, 3000, 2000, 1000},
		[]int64{orders[0].ID, orders[1].ID, orders[2].ID, orders[3].ID})
}

func TestUserRepository_InvalidAccountDoesNotDropOthers(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	repo := NewUserRepository(store)

	require.NoError(t, store.Set(ctx, kv.SessionKey(testSession, kv.KeyUsers),
		`[{"email":"a@x","password":"p"},{"email":"b@x","password":"p"},{"email":"c@x","password":""}]`))

	users, err := repo.FindAll(ctx, testSession)
	require.NoError(t, err)
	require.Len(t, users, 2)

	require.NoError(t, repo.SaveAll(ctx, testSession, append(users, model.User{Email: "d@x", Password: "p"})))

	found, err := repo.FindByCredentials(ctx, testSession, "a@x", "p")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "a@x", found.Email)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(kv.NewMemoryStore())

	current, err := repo.Current(ctx, testSession)
	require.NoError(t, err)
	assert.Nil(t, current)

	users := []model.User{
		{Email: "ada@example.com", Password: "secret", Name: "Ada"},
		{Email: "bob@example.com", Password: "hunter2", Name: "Bob"},
	}
	require.NoError(t, repo.SaveAll(ctx, testSession, users))

	found, err := repo.FindByCredentials(ctx, testSession, "bob@example.com", "hunter2")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Bob", found.Name)

	found, err = repo.FindByCredentials(ctx, testSession, "bob@example.com", "HUNTER2")
	require.NoError(t, err)
	assert.Nil(t, found)

	require.NoError(t, repo.SetCurrent(ctx, testSession, users[0]))
	current, err = repo.Current(ctx, testSession)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "ada@example.com", current.Email)

	require.NoError(t, repo.ClearCurrent(ctx, testSession))
	current, err = repo.Current(ctx, testSession)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestUserRepository_InvalidCurrentUserIsAbsent(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	repo := NewUserRepository(store)

	require.NoError(t, store.Set(ctx, kv.SessionKey(testSession, kv.KeyUser), `{"name":"no email"}`))

	current, err := repo.Current(ctx, testSession)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestRepositories_OnSQLStore(t *testing.T) {
	ctx := context.Background()
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	store := kv.NewGormStore(testDB)
	carts := NewCartRepository(store)

	require.NoError(t, carts.Save(ctx, testSession, []model.CartItem{{Product: testProduct(3), LineID: "z", Quantity: 4}}))
	items, err := carts.FindBySession(ctx, testSession)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)

	// another session sees nothing
	items, err = carts.FindBySession(ctx, "session-2")
	require.NoError(t, err)
	assert.Empty(t, items)
}

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/middleware"
	autherror "github.com/AnthoniusHendriyanto/marketplace-api/internal/errors"
	marketdomain "github.com/AnthoniusHendriyanto/marketplace-api/internal/market/domain"
)

func TestOwnsAccount(t *testing.T) {
	id := domain.Identity{AccountID: "0B4C6F3E-1C39-4A4E-9A53-0D9F1B3A7F10"}

	assert.NoError(t, middleware.OwnsAccount(id, &domain.Account{ID: "0b4c6f3e-1c39-4a4e-9a53-0d9f1b3a7f10"}))
	assert.Equal(t, autherror.ErrNotOwner, middleware.OwnsAccount(id, &domain.Account{ID: "someone-else"}))
	assert.Equal(t, autherror.ErrNotOwner, middleware.OwnsAccount(domain.Identity{}, &domain.Account{}))
	assert.Equal(t, autherror.KindInternal, autherror.KindOf(middleware.OwnsAccount(id, nil)))
}

func TestOwnsShop(t *testing.T) {
	id := domain.Identity{AccountID: "acc-1"}

	assert.NoError(t, middleware.OwnsShop(id, &marketdomain.Shop{OwnerID: "acc-1"}))
	assert.Equal(t, autherror.ErrNotOwner, middleware.OwnsShop(id, &marketdomain.Shop{OwnerID: "acc-2"}))
	assert.Equal(t, autherror.KindInternal, autherror.KindOf(middleware.OwnsShop(id, nil)))
}

func TestOwnsOrder(t *testing.T) {
	id := domain.Identity{AccountID: "acc-1"}

	assert.NoError(t, middleware.OwnsOrder(id, &marketdomain.Order{AccountID: " ACC-1 "}))
	assert.Equal(t, autherror.ErrNotOwner, middleware.OwnsOrder(id, &marketdomain.Order{AccountID: "acc-2"}))
	assert.Equal(t, autherror.KindInternal, autherror.KindOf(middleware.OwnsOrder(id, nil)))
}

func TestIsSeller(t *testing.T) {
	assert.NoError(t, middleware.IsSeller(domain.Identity{Seller: true}))

	err := middleware.IsSeller(domain.Identity{Email: "buyer@example.com"})
	assert.ErrorIs(t, err, autherror.ErrNotSeller)
	assert.Equal(t, autherror.KindForbidden, autherror.KindOf(err))
	assert.Contains(t, autherror.PublicMessage(err), "buyer@example.com")
}

// withIdentity stands in for RequireLogin in guard tests.
func withIdentity(id domain.Identity) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.SetUserContext(middleware.WithIdentity(c.UserContext(), id))
		return c.Next()
	}
}

func withShop(shop *marketdomain.Shop) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.SetUserContext(middleware.WithShop(c.UserContext(), shop))
		return c.Next()
	}
}

func withOrder(order *marketdomain.Order) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.SetUserContext(middleware.WithOrder(c.UserContext(), order))
		return c.Next()
	}
}

func ok(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) }

func TestGuardAdapters(t *testing.T) {
	owner := domain.Identity{AccountID: "acc-1", Email: "owner@example.com", Seller: true}
	buyer := domain.Identity{AccountID: "acc-2", Email: "buyer@example.com"}
	shop := &marketdomain.Shop{ID: "shop-1", OwnerID: "acc-1"}
	order := &marketdomain.Order{ID: "order-1", AccountID: "acc-2"}

	app := newApp()
	app.Get("/owner", withIdentity(owner), withShop(shop), middleware.RequireShopOwner(), ok)
	app.Get("/stranger", withIdentity(buyer), withShop(shop), middleware.RequireShopOwner(), ok)
	app.Get("/seller", withIdentity(owner), middleware.RequireSeller(), ok)
	app.Get("/buyer", withIdentity(buyer), middleware.RequireSeller(), ok)
	app.Get("/anonymous", middleware.RequireSeller(), ok)
	app.Get("/unloaded", withIdentity(owner), middleware.RequireAccountOwner(), ok)
	app.Get("/my-order", withIdentity(buyer), withOrder(order), middleware.RequireOrderOwner(), ok)
	app.Get("/their-order", withIdentity(owner), withOrder(order), middleware.RequireOrderOwner(), ok)

	tests := map[string]int{
		"/owner":       http.StatusNoContent,
		"/stranger":    http.StatusForbidden,
		"/seller":      http.StatusNoContent,
		"/buyer":       http.StatusForbidden,
		"/anonymous":   http.StatusInternalServerError,
		"/unloaded":    http.StatusInternalServerError,
		"/my-order":    http.StatusNoContent,
		"/their-order": http.StatusForbidden,
	}
	for path, want := range tests {
		t.Run(path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
			require.NoError(t, err)
			assert.Equal(t, want, resp.StatusCode)
		})
	}
}

func TestContextAccessors(t *testing.T) {
	ctx := context.Background()
	_, found := middleware.IdentityFrom(ctx)
	assert.False(t, found)
	assert.Nil(t, middleware.AccountFrom(ctx))
	assert.Nil(t, middleware.ShopFrom(ctx))
	assert.Nil(t, middleware.ProductFrom(ctx))
	assert.Nil(t, middleware.OrderFrom(ctx))

	product := &marketdomain.Product{ID: "prod-1"}
	assert.Same(t, product, middleware.ProductFrom(middleware.WithProduct(ctx, product)))
}

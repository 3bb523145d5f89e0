// Package middleware authenticates requests, loads path-referenced resources
// and applies the authorization guards. Everything it learns about a request
// travels in the request's user context.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/domain"
	marketdomain "github.com/AnthoniusHendriyanto/marketplace-api/internal/market/domain"
)

type ctxKey int

const (
	identityKey ctxKey = iota
	accountKey
	shopKey
	productKey
	orderKey
)

func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the identity attached by RequireLogin.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(domain.Identity)
	return id, ok
}

func WithAccount(ctx context.Context, account *domain.Account) context.Context {
	return context.WithValue(ctx, accountKey, account)
}

func AccountFrom(ctx context.Context) *domain.Account {
	account, _ := ctx.Value(accountKey).(*domain.Account)
	return account
}

func WithShop(ctx context.Context, shop *marketdomain.Shop) context.Context {
	return context.WithValue(ctx, shopKey, shop)
}

func ShopFrom(ctx context.Context) *marketdomain.Shop {
	shop, _ := ctx.Value(shopKey).(*marketdomain.Shop)
	return shop
}

func WithProduct(ctx context.Context, product *marketdomain.Product) context.Context {
	return context.WithValue(ctx, productKey, product)
}

func ProductFrom(ctx context.Context) *marketdomain.Product {
	product, _ := ctx.Value(productKey).(*marketdomain.Product)
	return product
}

func WithOrder(ctx context.Context, order *marketdomain.Order) context.Context {
	return context.WithValue(ctx, orderKey, order)
}

func OrderFrom(ctx context.Context) *marketdomain.Order {
	order, _ := ctx.Value(orderKey).(*marketdomain.Order)
	return order
}

func attach(c *fiber.Ctx, wrap func(context.Context) context.Context) {
	c.SetUserContext(wrap(c.UserContext()))
}

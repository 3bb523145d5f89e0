package middleware

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/marketplace-api/internal/errors"
	marketdomain "github.com/AnthoniusHendriyanto/marketplace-api/internal/market/domain"
)

type AccountGetter interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
}

type ShopGetter interface {
	GetByID(ctx context.Context, id string) (*marketdomain.Shop, error)
}

type ProductGetter interface {
	GetByID(ctx context.Context, id string) (*marketdomain.Product, error)
}

type OrderGetter interface {
	GetByID(ctx context.Context, id string) (*marketdomain.Order, error)
}

// LoadAccount fetches the account named by the path parameter and fails
// with not-found before any guard runs.
func LoadAccount(repo AccountGetter, param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c, param)
		if !ok {
			return autherror.ErrAccountNotFound
		}
		account, err := repo.GetByID(c.UserContext(), id)
		if err != nil {
			return autherror.Internal(fmt.Errorf("load account %s: %w", id, err))
		}
		if account == nil {
			return autherror.ErrAccountNotFound
		}
		attach(c, func(ctx context.Context) context.Context { return WithAccount(ctx, account) })
		return c.Next()
	}
}

func LoadShop(repo ShopGetter, param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c, param)
		if !ok {
			return autherror.ErrShopNotFound
		}
		shop, err := repo.GetByID(c.UserContext(), id)
		if err != nil {
			return autherror.Internal(fmt.Errorf("load shop %s: %w", id, err))
		}
		if shop == nil {
			return autherror.ErrShopNotFound
		}
		attach(c, func(ctx context.Context) context.Context { return WithShop(ctx, shop) })
		return c.Next()
	}
}

// LoadProduct fetches the product named by the path parameter. When a shop
// was loaded earlier in the chain the product must belong to it.
func LoadProduct(repo ProductGetter, param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c, param)
		if !ok {
			return autherror.ErrProductNotFound
		}
		product, err := repo.GetByID(c.UserContext(), id)
		if err != nil {
			return autherror.Internal(fmt.Errorf("load product %s: %w", id, err))
		}
		if product == nil {
			return autherror.ErrProductNotFound
		}
		if shop := ShopFrom(c.UserContext()); shop != nil &&
			domain.NormalizeID(shop.ID) != domain.NormalizeID(product.ShopID) {
			return autherror.ErrProductNotFound
		}
		attach(c, func(ctx context.Context) context.Context { return WithProduct(ctx, product) })
		return c.Next()
	}
}

func LoadOrder(repo OrderGetter, param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c, param)
		if !ok {
			return autherror.ErrOrderNotFound
		}
		order, err := repo.GetByID(c.UserContext(), id)
		if err != nil {
			return autherror.Internal(fmt.Errorf("load order %s: %w", id, err))
		}
		if order == nil {
			return autherror.ErrOrderNotFound
		}
		attach(c, func(ctx context.Context) context.Context { return WithOrder(ctx, order) })
		return c.Next()
	}
}

// pathID rejects ids that are not uuids so they never reach the database.
func pathID(c *fiber.Ctx, param string) (string, bool) {
	parsed, err := uuid.Parse(c.Params(param))
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

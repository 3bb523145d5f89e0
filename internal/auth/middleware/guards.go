package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/marketplace-api/internal/errors"
	marketdomain "github.com/AnthoniusHendriyanto/marketplace-api/internal/market/domain"
)

var (
	errNoIdentity = errors.New("guard reached without an authenticated identity")
	errNoResource = errors.New("guard reached before its resource was loaded")
)

// OwnsAccount allows an identity to act on its own account only.
func OwnsAccount(id domain.Identity, account *domain.Account) error {
	if account == nil {
		return autherror.Internal(errNoResource)
	}
	if !sameID(id.AccountID, account.ID) {
		return autherror.ErrNotOwner
	}
	return nil
}

// OwnsShop allows an identity to act on shops it owns.
func OwnsShop(id domain.Identity, shop *marketdomain.Shop) error {
	if shop == nil {
		return autherror.Internal(errNoResource)
	}
	if !sameID(id.AccountID, shop.OwnerID) {
		return autherror.ErrNotOwner
	}
	return nil
}

// OwnsOrder allows an identity to read the orders it placed.
func OwnsOrder(id domain.Identity, order *marketdomain.Order) error {
	if order == nil {
		return autherror.Internal(errNoResource)
	}
	if !sameID(id.AccountID, order.AccountID) {
		return autherror.ErrNotOwner
	}
	return nil
}

func IsSeller(id domain.Identity) error {
	if !id.Seller {
		return &autherror.Error{
			Kind:    autherror.KindForbidden,
			Message: "forbidden: account " + id.Email + " is not a seller",
			Err:     autherror.ErrNotSeller,
		}
	}
	return nil
}

func sameID(a, b string) bool {
	a, b = domain.NormalizeID(a), domain.NormalizeID(b)
	return a != "" && a == b
}

// RequireAccountOwner must follow RequireLogin and LoadAccount.
func RequireAccountOwner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := IdentityFrom(c.UserContext())
		if !ok {
			return autherror.Internal(errNoIdentity)
		}
		if err := OwnsAccount(id, AccountFrom(c.UserContext())); err != nil {
			return err
		}
		return c.Next()
	}
}

// RequireShopOwner must follow RequireLogin and LoadShop.
func RequireShopOwner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := IdentityFrom(c.UserContext())
		if !ok {
			return autherror.Internal(errNoIdentity)
		}
		if err := OwnsShop(id, ShopFrom(c.UserContext())); err != nil {
			return err
		}
		return c.Next()
	}
}

// RequireOrderOwner must follow RequireLogin and LoadOrder.
func RequireOrderOwner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := IdentityFrom(c.UserContext())
		if !ok {
			return autherror.Internal(errNoIdentity)
		}
		if err := OwnsOrder(id, OrderFrom(c.UserContext())); err != nil {
			return err
		}
		return c.Next()
	}
}

// RequireSeller must follow RequireLogin.
func RequireSeller() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := IdentityFrom(c.UserContext())
		if !ok {
			return autherror.Internal(errNoIdentity)
		}
		if err := IsSeller(id); err != nil {
			return err
		}
		return c.Next()
	}
}

package domain

//go:generate mockgen -destination=../../mocks/mock_market_repository.go -package=mocks github.com/AnthoniusHendriyanto/marketplace-api/internal/market/domain ShopRepository,ProductRepository,OrderRepository

import "context"

// Lookups return (nil, nil) when nothing matches.
type ShopRepository interface {
	GetByID(ctx context.Context, id string) (*Shop, error)
	List(ctx context.Context) ([]*Shop, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Shop, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	Create(ctx context.Context, shop *Shop) error
	Update(ctx context.Context, id string, update ShopUpdate) (*Shop, error)
	Delete(ctx context.Context, id string) error
}

type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*Product, error)
	ListByShop(ctx context.Context, shopID string) ([]*Product, error)
	Search(ctx context.Context, filter ProductFilter) ([]*Product, error)
	Categories(ctx context.Context) ([]string, error)
	Latest(ctx context.Context, limit int) ([]*Product, error)
	Related(ctx context.Context, product *Product, limit int) ([]*Product, error)
	CountByShop(ctx context.Context, shopID string) (int, error)
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, id string, update ProductUpdate) (*Product, error)
	// AdjustQuantity adds delta to the stock of a product. It returns
	// (nil, nil) when the product is gone or the stock would drop below zero.
	AdjustQuantity(ctx context.Context, id string, delta int) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByAccount(ctx context.Context, accountID string) ([]*Order, error)
	// ListByShop returns orders holding at least one item of the shop, with
	// only that shop's items attached.
	ListByShop(ctx context.Context, shopID string) ([]*Order, error)
	Create(ctx context.Context, order *Order) error
	GetItem(ctx context.Context, itemID string) (*CartItem, error)
	// UpdateItemStatus moves an item from one status to another and returns
	// (nil, nil) when the item is no longer in status from.
	UpdateItemStatus(ctx context.Context, itemID string, from, to CartItemStatus) (*CartItem, error)
}

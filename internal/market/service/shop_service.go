package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	authdomain "github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/marketplace-api/internal/errors"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/market/domain"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/market/dto"
)

type ShopService struct {
	shops    domain.ShopRepository
	products domain.ProductRepository
	logger   *slog.Logger
}

func NewShopService(shops domain.ShopRepository, products domain.ProductRepository, logger *slog.Logger) *ShopService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShopService{shops: shops, products: products, logger: logger}
}

func (s *ShopService) List(ctx context.Context) ([]*domain.Shop, error) {
	shops, err := s.shops.List(ctx)
	if err != nil {
		return nil, autherror.Internal(err)
	}
	return shops, nil
}

func (s *ShopService) ListByOwner(ctx context.Context, owner *authdomain.Account) ([]*domain.Shop, error) {
	shops, err := s.shops.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, autherror.Internal(err)
	}
	return shops, nil
}

// Create opens a shop for owner. Ownership and seller status are checked by
// the route guards before this runs.
func (s *ShopService) Create(ctx context.Context, owner *authdomain.Account, input dto.CreateShopInput) (*domain.Shop, error) {
	name, err := cleanText("name", input.Name, maxShopNameLength, true)
	if err != nil {
		return nil, err
	}
	description, err := cleanText("description", input.Description, maxShopDescriptionLength, false)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	shop := &domain.Shop{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		OwnerID:     owner.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.shops.Create(ctx, shop); err != nil {
		return nil, autherror.Internal(fmt.Errorf("create shop: %w", err))
	}

	s.logger.InfoContext(ctx, "shop created", "shop_id", shop.ID, "owner_id", owner.ID)
	return shop, nil
}

func (s *ShopService) Update(ctx context.Context, shop *domain.Shop, input dto.UpdateShopInput) (*domain.Shop, error) {
	var update domain.ShopUpdate
	if input.Name != nil {
		name, err := cleanText("name", *input.Name, maxShopNameLength, true)
		if err != nil {
			return nil, err
		}
		update.Name = &name
	}
	if input.Description != nil {
		description, err := cleanText("description", *input.Description, maxShopDescriptionLength, false)
		if err != nil {
			return nil, err
		}
		update.Description = &description
	}

	updated, err := s.shops.Update(ctx, shop.ID, update)
	if err != nil {
		return nil, autherror.Internal(fmt.Errorf("update shop: %w", err))
	}
	if updated == nil {
		return nil, autherror.ErrShopNotFound
	}
	return updated, nil
}

// Delete refuses to remove a shop that still lists products.
func (s *ShopService) Delete(ctx context.Context, shop *domain.Shop) error {
	n, err := s.products.CountByShop(ctx, shop.ID)
	if err != nil {
		return autherror.Internal(fmt.Errorf("count products: %w", err))
	}
	if n > 0 {
		return autherror.ErrShopHasProducts
	}
	if err := s.shops.Delete(ctx, shop.ID); err != nil {
		return autherror.Internal(fmt.Errorf("delete shop: %w", err))
	}
	s.logger.InfoContext(ctx, "shop deleted", "shop_id", shop.ID)
	return nil
}

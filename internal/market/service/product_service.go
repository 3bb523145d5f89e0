package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	autherror "github.com/AnthoniusHendriyanto/marketplace-api/internal/errors"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/market/domain"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/market/dto"
)

const (
	// allCategories in a filter means no category restriction.
	allCategories = "All"

	showcaseLimit = 5
)

type ProductService struct {
	products domain.ProductRepository
	logger   *slog.Logger
}

func NewProductService(products domain.ProductRepository, logger *slog.Logger) *ProductService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductService{products: products, logger: logger}
}

func (s *ProductService) Search(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Category = strings.TrimSpace(filter.Category)
	if strings.EqualFold(filter.Category, allCategories) {
		filter.Category = ""
	}
	products, err := s.products.Search(ctx, filter)
	if err != nil {
		return nil, autherror.Internal(err)
	}
	return products, nil
}

func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.products.Categories(ctx)
	if err != nil {
		return nil, autherror.Internal(err)
	}
	return categories, nil
}

// Latest returns the newest products of the whole catalogue.
func (s *ProductService) Latest(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.products.Latest(ctx, showcaseLimit)
	if err != nil {
		return nil, autherror.Internal(err)
	}
	return products, nil
}

// Related returns other products sharing the category of product.
func (s *ProductService) Related(ctx context.Context, product *domain.Product) ([]*domain.Product, error) {
	products, err := s.products.Related(ctx, product, showcaseLimit)
	if err != nil {
		return nil, autherror.Internal(err)
	}
	return products, nil
}

func (s *ProductService) ListByShop(ctx context.Context, shop *domain.Shop) ([]*domain.Product, error) {
	products, err := s.products.ListByShop(ctx, shop.ID)
	if err != nil {
		return nil, autherror.Internal(err)
	}
	return products, nil
}

func (s *ProductService) Create(ctx context.Context, shop *domain.Shop, input dto.CreateProductInput) (*domain.Product, error) {
	if input.Quantity == nil || input.Price == nil {
		return nil, autherror.Validation("quantity and price are required")
	}
	name, err := cleanText("name", input.Name, maxProductNameLength, true)
	if err != nil {
		return nil, err
	}
	description, err := cleanText("description", input.Description, maxDescriptionLength, false)
	if err != nil {
		return nil, err
	}
	if err := checkQuantity("quantity", *input.Quantity, 0); err != nil {
		return nil, err
	}
	if err := checkNonNegative("price", *input.Price); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.NewString(),
		ShopID:      shop.ID,
		Name:        name,
		Description: description,
		Category:    strings.TrimSpace(input.Category),
		Quantity:    *input.Quantity,
		Price:       *input.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, autherror.Internal(fmt.Errorf("create product: %w", err))
	}

	s.logger.InfoContext(ctx, "product created", "product_id", product.ID, "shop_id", shop.ID)
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, product *domain.Product, input dto.UpdateProductInput) (*domain.Product, error) {
	var update domain.ProductUpdate
	if input.Name != nil {
		name, err := cleanText("name", *input.Name, maxProductNameLength, true)
		if err != nil {
			return nil, err
		}
		update.Name = &name
	}
	if input.Description != nil {
		description, err := cleanText("description", *input.Description, maxDescriptionLength, false)
		if err != nil {
			return nil, err
		}
		update.Description = &description
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		update.Category = &category
	}
	if input.Quantity != nil {
		if err := checkQuantity("quantity", *input.Quantity, 0); err != nil {
			return nil, err
		}
		update.Quantity = input.Quantity
	}
	if input.Price != nil {
		if err := checkNonNegative("price", *input.Price); err != nil {
			return nil, err
		}
		update.Price = input.Price
	}

	updated, err := s.products.Update(ctx, product.ID, update)
	if err != nil {
		return nil, autherror.Internal(fmt.Errorf("update product: %w", err))
	}
	if updated == nil {
		return nil, autherror.ErrProductNotFound
	}
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, product *domain.Product) error {
	if err := s.products.Delete(ctx, product.ID); err != nil {
		return autherror.Internal(fmt.Errorf("delete product: %w", err))
	}
	s.logger.InfoContext(ctx, "product deleted", "product_id", product.ID, "shop_id", product.ShopID)
	return nil
}

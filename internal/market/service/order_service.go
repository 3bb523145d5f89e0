package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	authdomain "github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/marketplace-api/internal/errors"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/market/domain"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/market/dto"
)

type OrderService struct {
	orders   domain.OrderRepository
	products domain.ProductRepository
	logger   *slog.Logger
}

func NewOrderService(orders domain.OrderRepository, products domain.ProductRepository, logger *slog.Logger) *OrderService {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderService{orders: orders, products: products, logger: logger}
}

func (s *OrderService) Statuses() []domain.CartItemStatus {
	return domain.CartItemStatuses
}

func (s *OrderService) ListByAccount(ctx context.Context, account *authdomain.Account) ([]*domain.Order, error) {
	orders, err := s.orders.ListByAccount(ctx, account.ID)
	if err != nil {
		return nil, autherror.Internal(err)
	}
	return orders, nil
}

func (s *OrderService) ListByShop(ctx context.Context, shop *domain.Shop) ([]*domain.Order, error) {
	orders, err := s.orders.ListByShop(ctx, shop.ID)
	if err != nil {
		return nil, autherror.Internal(err)
	}
	return orders, nil
}

type lineRequest struct {
	productID string
	quantity  int
}

// Create places an order for account. Stock is taken product by product;
// any failure puts back what was already taken.
func (s *OrderService) Create(ctx context.Context, account *authdomain.Account, input dto.CreateOrderInput) (*domain.Order, error) {
	order, lines, err := newOrder(account, input)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		item, err := s.reserve(ctx, order.ID, line)
		if err != nil {
			s.restock(ctx, order.Items)
			return nil, err
		}
		order.Items = append(order.Items, item)
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.restock(ctx, order.Items)
		return nil, autherror.Internal(fmt.Errorf("create order: %w", err))
	}

	s.logger.InfoContext(ctx, "order placed", "order_id", order.ID, "account_id", account.ID, "items", len(order.Items))
	return order, nil
}

func newOrder(account *authdomain.Account, input dto.CreateOrderInput) (*domain.Order, []lineRequest, error) {
	if len(input.Products) == 0 {
		return nil, nil, autherror.Validation("order needs at least one product")
	}

	name := input.CustomerName
	if strings.TrimSpace(name) == "" {
		name = account.Name
	}
	name, err := cleanText("customer name", name, maxCustomerNameLength, true)
	if err != nil {
		return nil, nil, err
	}

	email := authdomain.NormalizeEmail(input.CustomerEmail)
	if email == "" {
		email = account.Email
	}
	if !emailPattern.MatchString(email) {
		return nil, nil, autherror.Validation("customer email is invalid")
	}

	address, err := cleanAddress(input.DeliveryAddress)
	if err != nil {
		return nil, nil, err
	}

	lines := make([]lineRequest, 0, len(input.Products))
	seen := make(map[string]bool, len(input.Products))
	for i, p := range input.Products {
		parsed, err := uuid.Parse(strings.TrimSpace(p.ProductID))
		if err != nil {
			return nil, nil, autherror.Validation("products[" + strconv.Itoa(i) + "] has an invalid product id")
		}
		id := parsed.String()
		if seen[id] {
			return nil, nil, autherror.Validation("product " + id + " is listed twice")
		}
		seen[id] = true
		if err := checkQuantity("products["+strconv.Itoa(i)+"] quantity", p.Quantity, 1); err != nil {
			return nil, nil, err
		}
		lines = append(lines, lineRequest{productID: id, quantity: p.Quantity})
	}

	now := time.Now().UTC()
	return &domain.Order{
		ID:            uuid.NewString(),
		AccountID:     account.ID,
		CustomerName:  name,
		CustomerEmail: email,
		Address:       address,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, lines, nil
}

func cleanAddress(in dto.Address) (domain.Address, error) {
	var out domain.Address
	fields := []struct {
		name     string
		value    string
		dest     *string
		required bool
	}{
		{"street", in.Street, &out.Street, true},
		{"city", in.City, &out.City, true},
		{"state", in.State, &out.State, false},
		{"zipcode", in.Zipcode, &out.Zipcode, true},
		{"country", in.Country, &out.Country, true},
	}
	for _, f := range fields {
		v, err := cleanText(f.name, f.value, maxAddressLength, f.required)
		if err != nil {
			return domain.Address{}, err
		}
		*f.dest = v
	}
	return out, nil
}

// reserve takes line.quantity units of stock and snapshots the product into
// a cart item.
func (s *OrderService) reserve(ctx context.Context, orderID string, line lineRequest) (domain.CartItem, error) {
	product, err := s.products.GetByID(ctx, line.productID)
	if err != nil {
		return domain.CartItem{}, autherror.Internal(fmt.Errorf("load product %s: %w", line.productID, err))
	}
	if product == nil {
		return domain.CartItem{}, autherror.ErrProductNotFound
	}

	taken, err := s.products.AdjustQuantity(ctx, product.ID, -line.quantity)
	if err != nil {
		return domain.CartItem{}, autherror.Internal(fmt.Errorf("take stock of %s: %w", product.ID, err))
	}
	if taken == nil {
		return domain.CartItem{}, &autherror.Error{
			Kind:    autherror.KindConflict,
			Message: "insufficient stock for " + product.Name,
			Err:     autherror.ErrInsufficientStock,
		}
	}

	return domain.CartItem{
		ID:          uuid.NewString(),
		OrderID:     orderID,
		ProductID:   product.ID,
		ShopID:      product.ShopID,
		ProductName: product.Name,
		Price:       product.Price,
		Quantity:    line.quantity,
		Status:      domain.StatusNotProcessed,
	}, nil
}

func (s *OrderService) restock(ctx context.Context, items []domain.CartItem) {
	for _, item := range items {
		restocked, err := s.products.AdjustQuantity(ctx, item.ProductID, item.Quantity)
		if err != nil {
			s.logger.ErrorContext(ctx, "restock failed", "product_id", item.ProductID, "quantity", item.Quantity, "error", err)
			continue
		}
		if restocked == nil {
			s.logger.WarnContext(ctx, "restock skipped, product is gone", "product_id", item.ProductID)
		}
	}
}

// UpdateStatus moves one cart item of shop to a new status. Cancelling puts
// the item's quantity back on the shelf; a cancelled item is final.
func (s *OrderService) UpdateStatus(ctx context.Context, shop *domain.Shop, input dto.UpdateStatusInput) (*domain.CartItem, error) {
	itemID := strings.TrimSpace(input.CartItemID)
	status := domain.CartItemStatus(strings.TrimSpace(input.Status))
	if itemID == "" || status == "" {
		return nil, autherror.Validation("cart item id and status are required")
	}
	if !status.Valid() {
		return nil, autherror.Validation("unknown status " + strconv.Quote(string(status)))
	}
	parsed, err := uuid.Parse(itemID)
	if err != nil {
		return nil, autherror.ErrCartItemNotFound
	}

	item, err := s.orders.GetItem(ctx, parsed.String())
	if err != nil {
		return nil, autherror.Internal(fmt.Errorf("load cart item %s: %w", itemID, err))
	}
	if item == nil || authdomain.NormalizeID(item.ShopID) != authdomain.NormalizeID(shop.ID) {
		return nil, autherror.ErrCartItemNotFound
	}
	if item.Status == domain.StatusCancelled {
		return nil, autherror.ErrCartItemCancelled
	}
	if item.Status == status {
		return item, nil
	}

	updated, err := s.orders.UpdateItemStatus(ctx, item.ID, item.Status, status)
	if err != nil {
		return nil, autherror.Internal(fmt.Errorf("update cart item %s: %w", item.ID, err))
	}
	if updated == nil {
		return nil, autherror.ErrCartItemChanged
	}

	if status == domain.StatusCancelled {
		s.restock(ctx, []domain.CartItem{*updated})
	}
	s.logger.InfoContext(ctx, "cart item status changed",
		"cart_item_id", item.ID, "shop_id", shop.ID, "from", string(item.Status), "to", string(status))
	return updated, nil
}

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jackc/pgx/v5"

	"github.com/AnthoniusHendriyanto/marketplace-api/db"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/market/domain"
)

var (
	orderColumns = []string{
		"id", "account_id", "customer_name", "customer_email",
		"street", "city", "state", "zipcode", "country", "created_at", "updated_at",
	}
	cartItemColumns = []string{
		"id", "order_id", "product_id", "shop_id", "product_name", "price", "quantity", "status",
	}
)

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(conn db.DBTX) *OrderRepository {
	return &OrderRepository{db: conn}
}

func qualify(alias string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + c
	}
	return out
}

// selectOrders joins every order with its items. Rows of one order are
// contiguous and items keep their insertion position.
func selectOrders() *sqlbuilder.SelectBuilder {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(append(qualify("o", orderColumns), qualify("ci", cartItemColumns)...)...).
		From("orders o").
		Join("cart_items ci", "ci.order_id = o.id").
		OrderBy("o.created_at DESC", "o.id", "ci.position")
	return sb
}

func scanCartItem(row pgx.Row, dest ...any) (domain.CartItem, error) {
	var item domain.CartItem
	var status string
	dest = append(dest, &item.ID, &item.OrderID, &item.ProductID, &item.ShopID,
		&item.ProductName, &item.Price, &item.Quantity, &status)
	if err := row.Scan(dest...); err != nil {
		return domain.CartItem{}, err
	}
	item.Status = domain.CartItemStatus(status)
	return item, nil
}

func (r *OrderRepository) collect(ctx context.Context, sb *sqlbuilder.SelectBuilder) ([]*domain.Order, error) {
	query, args := sb.Build()
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	var current *domain.Order
	for rows.Next() {
		o := &domain.Order{}
		item, err := scanCartItem(rows,
			&o.ID, &o.AccountID, &o.CustomerName, &o.CustomerEmail,
			&o.Address.Street, &o.Address.City, &o.Address.State, &o.Address.Zipcode, &o.Address.Country,
			&o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if current == nil || current.ID != o.ID {
			current = o
			orders = append(orders, current)
		}
		current.Items = append(current.Items, item)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	sb := selectOrders()
	sb.Where(sb.Equal("o.id", id))

	orders, err := r.collect(ctx, sb)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}
	return orders[0], nil
}

func (r *OrderRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Order, error) {
	sb := selectOrders()
	sb.Where(sb.Equal("o.account_id", accountID))
	return r.collect(ctx, sb)
}

func (r *OrderRepository) ListByShop(ctx context.Context, shopID string) ([]*domain.Order, error) {
	sb := selectOrders()
	sb.Where(sb.Equal("ci.shop_id", shopID))
	return r.collect(ctx, sb)
}

// Create stores the order and its items in one transaction.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin order: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ob := sqlbuilder.PostgreSQL.NewInsertBuilder()
	ob.InsertInto("orders").
		Cols(orderColumns...).
		Values(o.ID, o.AccountID, o.CustomerName, o.CustomerEmail,
			o.Address.Street, o.Address.City, o.Address.State, o.Address.Zipcode, o.Address.Country,
			o.CreatedAt, o.UpdatedAt)
	query, args := ob.Build()
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	ib := sqlbuilder.PostgreSQL.NewInsertBuilder()
	ib.InsertInto("cart_items").Cols(append([]string{"position"}, cartItemColumns...)...)
	for i, item := range o.Items {
		ib.Values(i, item.ID, o.ID, item.ProductID, item.ShopID, item.ProductName, item.Price, item.Quantity, string(item.Status))
	}
	query, args = ib.Build()
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert cart items: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *OrderRepository) GetItem(ctx context.Context, itemID string) (*domain.CartItem, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(cartItemColumns...).From("cart_items").Where(sb.Equal("id", itemID))

	query, args := sb.Build()
	item, err := scanCartItem(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}
	return &item, nil
}

func (r *OrderRepository) UpdateItemStatus(ctx context.Context, itemID string, from, to domain.CartItemStatus) (*domain.CartItem, error) {
	ub := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	ub.Update("cart_items").
		Set(ub.Assign("status", string(to))).
		Where(ub.Equal("id", itemID), ub.Equal("status", string(from)))
	ub.SQL("RETURNING " + strings.Join(cartItemColumns, ", "))

	query, args := ub.Build()
	item, err := scanCartItem(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	return &item, nil
}

package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jackc/pgx/v5"

	"github.com/AnthoniusHendriyanto/marketplace-api/db"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/market/domain"
)

var productColumns = []string{
	"id", "shop_id", "name", "description", "category", "quantity", "price", "created_at", "updated_at",
}

type ProductRepository struct {
	db db.DBTX
}

func NewProductRepository(conn db.DBTX) *ProductRepository {
	return &ProductRepository{db: conn}
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.ShopID, &p.Name, &p.Description, &p.Category,
		&p.Quantity, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(productColumns...).From("products").Where(sb.Equal("id", id))

	query, args := sb.Build()
	product, err := scanProduct(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (r *ProductRepository) ListByShop(ctx context.Context, shopID string) ([]*domain.Product, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(productColumns...).From("products").Where(sb.Equal("shop_id", shopID)).OrderBy("created_at")
	return r.list(ctx, sb)
}

// likeEscaper makes user input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Search lists the catalogue, newest first.
func (r *ProductRepository) Search(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(productColumns...).From("products")
	if filter.Search != "" {
		pattern := "%" + likeEscaper.Replace(filter.Search) + "%"
		sb.Where("name ILIKE " + sb.Var(pattern) + ` ESCAPE '\'`)
	}
	if filter.Category != "" {
		sb.Where(sb.Equal("category", filter.Category))
	}
	sb.OrderBy("created_at").Desc()
	return r.list(ctx, sb)
}

func (r *ProductRepository) Latest(ctx context.Context, limit int) ([]*domain.Product, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(productColumns...).From("products").OrderBy("created_at").Desc().Limit(limit)
	return r.list(ctx, sb)
}

// Related lists other products in the same category.
func (r *ProductRepository) Related(ctx context.Context, product *domain.Product, limit int) ([]*domain.Product, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(productColumns...).From("products").
		Where(sb.Equal("category", product.Category), sb.NotEqual("id", product.ID)).
		OrderBy("created_at").Desc().
		Limit(limit)
	return r.list(ctx, sb)
}

func (r *ProductRepository) list(ctx context.Context, sb *sqlbuilder.SelectBuilder) ([]*domain.Product, error) {
	query, args := sb.Build()
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *ProductRepository) CountByShop(ctx context.Context, shopID string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM products WHERE shop_id = $1`, shopID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	ib := sqlbuilder.PostgreSQL.NewInsertBuilder()
	ib.InsertInto("products").
		Cols(productColumns...).
		Values(p.ID, p.ShopID, p.Name, p.Description, p.Category, p.Quantity, p.Price, p.CreatedAt, p.UpdatedAt)

	query, args := ib.Build()
	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *ProductRepository) Update(ctx context.Context, id string, u domain.ProductUpdate) (*domain.Product, error) {
	ub := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	ub.Update("products")

	assignments := []string{ub.Assign("updated_at", time.Now().UTC())}
	if u.Name != nil {
		assignments = append(assignments, ub.Assign("name", *u.Name))
	}
	if u.Description != nil {
		assignments = append(assignments, ub.Assign("description", *u.Description))
	}
	if u.Category != nil {
		assignments = append(assignments, ub.Assign("category", *u.Category))
	}
	if u.Quantity != nil {
		assignments = append(assignments, ub.Assign("quantity", *u.Quantity))
	}
	if u.Price != nil {
		assignments = append(assignments, ub.Assign("price", *u.Price))
	}
	ub.Set(assignments...)
	ub.Where(ub.Equal("id", id))
	ub.SQL("RETURNING " + strings.Join(productColumns, ", "))

	query, args := ub.Build()
	product, err := scanProduct(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (r *ProductRepository) AdjustQuantity(ctx context.Context, id string, delta int) (*domain.Product, error) {
	ub := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	ub.Update("products").
		Set(ub.Assign("updated_at", time.Now().UTC()), ub.Add("quantity", delta)).
		Where(ub.Equal("id", id), ub.GreaterEqualThan("quantity", -delta))
	ub.SQL("RETURNING " + strings.Join(productColumns, ", "))

	query, args := ub.Build()
	product, err := scanProduct(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}
	return product, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}

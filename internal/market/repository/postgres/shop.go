package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jackc/pgx/v5"

	"github.com/AnthoniusHendriyanto/marketplace-api/db"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/market/domain"
)

const shopColumns = `id, name, description, owner_id, created_at, updated_at`

type ShopRepository struct {
	db db.DBTX
}

func NewShopRepository(conn db.DBTX) *ShopRepository {
	return &ShopRepository{db: conn}
}

func scanShop(row pgx.Row) (*domain.Shop, error) {
	var s domain.Shop
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &s.OwnerID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ShopRepository) GetByID(ctx context.Context, id string) (*domain.Shop, error) {
	shop, err := scanShop(r.db.QueryRow(ctx, `SELECT `+shopColumns+` FROM shops WHERE id = $1`, id))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}
	return shop, nil
}

func (r *ShopRepository) List(ctx context.Context) ([]*domain.Shop, error) {
	return r.list(ctx, `SELECT `+shopColumns+` FROM shops ORDER BY created_at`)
}

func (r *ShopRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Shop, error) {
	return r.list(ctx, `SELECT `+shopColumns+` FROM shops WHERE owner_id = $1 ORDER BY created_at`, ownerID)
}

func (r *ShopRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Shop, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}
	defer rows.Close()

	shops := []*domain.Shop{}
	for rows.Next() {
		s, err := scanShop(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shop: %w", err)
		}
		shops = append(shops, s)
	}
	return shops, rows.Err()
}

func (r *ShopRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM shops WHERE owner_id = $1`, ownerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count shops: %w", err)
	}
	return n, nil
}

func (r *ShopRepository) Create(ctx context.Context, s *domain.Shop) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO shops (id, name, description, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, s.ID, s.Name, s.Description, s.OwnerID, s.CreatedAt, s.UpdatedAt)
	return err
}

func (r *ShopRepository) Update(ctx context.Context, id string, u domain.ShopUpdate) (*domain.Shop, error) {
	ub := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	ub.Update("shops")

	assignments := []string{ub.Assign("updated_at", time.Now().UTC())}
	if u.Name != nil {
		assignments = append(assignments, ub.Assign("name", *u.Name))
	}
	if u.Description != nil {
		assignments = append(assignments, ub.Assign("description", *u.Description))
	}
	ub.Set(assignments...)
	ub.Where(ub.Equal("id", id))
	ub.SQL("RETURNING " + shopColumns)

	query, args := ub.Build()
	shop, err := scanShop(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update shop: %w", err)
	}
	return shop, nil
}

func (r *ShopRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM shops WHERE id = $1`, id)
	return err
}

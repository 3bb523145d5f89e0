package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jackc/pgx/v5"

	"github.com/AnthoniusHendriyanto/marketplace-api/db"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/marketplace-api/internal/errors"
)

const accountColumns = `id, name, email, password_hash, salt, seller, refresh_token, stripe_customer_id, stripe_seller_id, created_at, updated_at`

type PostgresRepository struct {
	db db.DBTX
}

func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Salt, &a.Seller,
		&a.RefreshToken, &a.StripeCustomerID, &a.StripeSellerID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PostgresRepository) getOne(ctx context.Context, where string, arg any) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + where + ` LIMIT 1`
	account, err := scanAccount(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return account, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.getOne(ctx, `lower(email) = $1`, domain.NormalizeEmail(email))
}

func (r *PostgresRepository) GetByRefreshToken(ctx context.Context, token string) (*domain.Account, error) {
	return r.getOne(ctx, `refresh_token = $1`, token)
}

func (r *PostgresRepository) List(ctx context.Context) ([]*domain.Account, error) {
	rows, err := r.db.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []*domain.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, a *domain.Account) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO accounts (id, name, email, password_hash, salt, seller, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, a.ID, a.Name, a.Email, a.PasswordHash, a.Salt, a.Seller, a.CreatedAt, a.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return autherror.ErrEmailAlreadyInUse
	}
	return err
}

// Update writes only the fields set in u and returns the new row, or nil
// when id matches nothing.
func (r *PostgresRepository) Update(ctx context.Context, id string, u domain.AccountUpdate) (*domain.Account, error) {
	ub := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	ub.Update("accounts")

	assignments := []string{ub.Assign("updated_at", time.Now().UTC())}
	if u.Name != nil {
		assignments = append(assignments, ub.Assign("name", *u.Name))
	}
	if u.Email != nil {
		assignments = append(assignments, ub.Assign("email", domain.NormalizeEmail(*u.Email)))
	}
	if u.Seller != nil {
		assignments = append(assignments, ub.Assign("seller", *u.Seller))
	}
	if u.PasswordHash != nil {
		assignments = append(assignments,
			ub.Assign("password_hash", u.PasswordHash),
			ub.Assign("salt", u.Salt))
	}
	ub.Set(assignments...)
	ub.Where(ub.Equal("id", id))
	ub.SQL("RETURNING " + accountColumns)

	query, args := ub.Build()
	account, err := scanAccount(r.db.QueryRow(ctx, query, args...))
	switch {
	case err == nil:
		return account, nil
	case db.IsNoRows(err):
		return nil, nil
	case db.IsUniqueViolation(err):
		return nil, autherror.ErrEmailAlreadyInUse
	default:
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	return err
}

// SetRefreshToken replaces the single stored session of an account.
func (r *PostgresRepository) SetRefreshToken(ctx context.Context, id, token string) error {
	_, err := r.db.Exec(ctx, `UPDATE accounts SET refresh_token = $1, updated_at = now() WHERE id = $2`, token, id)
	return err
}

func (r *PostgresRepository) ClearRefreshToken(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx, `UPDATE accounts SET refresh_token = NULL, updated_at = now() WHERE refresh_token = $1`, token)
	return err
}

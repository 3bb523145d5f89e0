package domain

//go:generate mockgen -destination=../../mocks/mock_account_repository.go -package=mocks github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/domain AccountRepository

import "context"

// AccountRepository returns (nil, nil) from lookups that find nothing.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByRefreshToken(ctx context.Context, token string) (*Account, error)
	List(ctx context.Context) ([]*Account, error)
	Create(ctx context.Context, account *Account) error
	Update(ctx context.Context, id string, update AccountUpdate) (*Account, error)
	Delete(ctx context.Context, id string) error
	SetRefreshToken(ctx context.Context, id, token string) error
	ClearRefreshToken(ctx context.Context, token string) error
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/credential"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/dto"
	autherror "github.com/AnthoniusHendriyanto/marketplace-api/internal/errors"
)

// ShopCounter tells account deletion whether dependent shops exist.
type ShopCounter interface {
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}

type AccountService struct {
	repo   domain.AccountRepository
	shops  ShopCounter
	logger *slog.Logger
}

func NewAccountService(repo domain.AccountRepository, shops ShopCounter, logger *slog.Logger) *AccountService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{repo: repo, shops: shops, logger: logger}
}

func (s *AccountService) List(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, autherror.Internal(fmt.Errorf("list accounts: %w", err))
	}
	return accounts, nil
}

// Update applies a partial update to an already authorized account. A new
// password always comes with a newly generated salt.
func (s *AccountService) Update(ctx context.Context, account *domain.Account, input dto.UpdateAccountInput) (*domain.Account, error) {
	var update domain.AccountUpdate

	if input.Name != nil {
		if err := validateName(*input.Name); err != nil {
			return nil, err
		}
		name := strings.TrimSpace(*input.Name)
		update.Name = &name
	}

	if input.Email != nil {
		email := domain.NormalizeEmail(*input.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		if email != domain.NormalizeEmail(account.Email) {
			existing, err := s.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, autherror.Internal(fmt.Errorf("lookup email: %w", err))
			}
			if existing != nil {
				return nil, autherror.ErrEmailAlreadyInUse
			}
		}
		update.Email = &email
	}

	if input.Password != nil {
		if err := credential.ValidatePassword(*input.Password); err != nil {
			return nil, err
		}
		salt, hash, err := credential.Hash(*input.Password)
		if err != nil {
			return nil, autherror.Internal(fmt.Errorf("hash password: %w", err))
		}
		update.Salt, update.PasswordHash = salt, hash
	}

	if input.Seller != nil {
		seller := *input.Seller
		update.Seller = &seller
	}

	updated, err := s.repo.Update(ctx, account.ID, update)
	if err != nil {
		if errors.Is(err, autherror.ErrEmailAlreadyInUse) {
			return nil, autherror.ErrEmailAlreadyInUse
		}
		return nil, autherror.Internal(fmt.Errorf("update account: %w", err))
	}
	if updated == nil {
		return nil, autherror.ErrAccountNotFound
	}

	s.logger.InfoContext(ctx, "account updated", "account_id", account.ID, "password_changed", input.Password != nil)
	return updated, nil
}

// Delete removes an already authorized account unless it still owns a shop.
func (s *AccountService) Delete(ctx context.Context, account *domain.Account) error {
	owned, err := s.shops.CountByOwner(ctx, account.ID)
	if err != nil {
		return autherror.Internal(fmt.Errorf("count shops: %w", err))
	}
	if owned > 0 {
		return autherror.ErrAccountOwnsShop
	}
	if err := s.repo.Delete(ctx, account.ID); err != nil {
		return autherror.Internal(fmt.Errorf("delete account: %w", err))
	}
	s.logger.InfoContext(ctx, "account deleted", "account_id", account.ID)
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/credential"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/dto"
	autherror "github.com/AnthoniusHendriyanto/marketplace-api/internal/errors"
)

type AuthService struct {
	repo   domain.AccountRepository
	tokens TokenIssuer
	logger *slog.Logger
}

func NewAuthService(repo domain.AccountRepository, tokens TokenIssuer, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		repo:   repo,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a buyer or seller account. The password is hashed before
// the single insert, so a stored account always has its hash.
func (s *AuthService) Register(ctx context.Context, input dto.RegisterInput) (*domain.Account, error) {
	email := domain.NormalizeEmail(input.Email)
	if strings.TrimSpace(input.Name) == "" || email == "" || input.Password == "" {
		return nil, autherror.ErrMissingFields
	}
	if err := validateName(input.Name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := credential.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, autherror.Internal(fmt.Errorf("lookup email: %w", err))
	}
	if existing != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	salt, hash, err := credential.Hash(input.Password)
	if err != nil {
		return nil, autherror.Internal(fmt.Errorf("hash password: %w", err))
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Salt:         salt,
		Seller:       input.Seller != nil && *input.Seller,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, autherror.ErrEmailAlreadyInUse) {
			return nil, autherror.ErrEmailAlreadyInUse
		}
		return nil, autherror.Internal(fmt.Errorf("create account: %w", err))
	}

	s.logger.InfoContext(ctx, "account registered", "account_id", account.ID, "seller", account.Seller)
	return account, nil
}

// Login checks the password exactly as submitted and starts a new session.
// The stored refresh token is overwritten, ending any previous session.
func (s *AuthService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginResult, error) {
	email := domain.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, autherror.ErrMissingFields
	}

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, autherror.Internal(fmt.Errorf("lookup email: %w", err))
	}
	if account == nil {
		return nil, autherror.ErrUserNotFound
	}
	if !credential.Verify(input.Password, account.Salt, account.PasswordHash) {
		return nil, autherror.ErrWrongPassword
	}

	accessToken, err := s.tokens.IssueAccess(account.ID, account.Email, account.Seller)
	if err != nil {
		return nil, autherror.Internal(fmt.Errorf("issue access token: %w", err))
	}
	refreshToken, err := s.tokens.IssueRefresh(account.Email)
	if err != nil {
		return nil, autherror.Internal(fmt.Errorf("issue refresh token: %w", err))
	}

	if err := s.repo.SetRefreshToken(ctx, account.ID, refreshToken); err != nil {
		return nil, autherror.Internal(fmt.Errorf("store refresh token: %w", err))
	}

	s.logger.InfoContext(ctx, "account logged in", "account_id", account.ID)
	return &dto.LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.NewUserOutput(account),
	}, nil
}

// Refresh mints a new access token from the session cookie value. The cookie
// must verify and must equal the token stored on the account it names.
// The refresh token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (*dto.TokenOutput, error) {
	if rawToken == "" {
		return nil, autherror.ErrNoSessionCookie
	}

	claims, err := s.tokens.VerifyRefresh(rawToken)
	switch {
	case errors.Is(err, ErrTokenExpired):
		return nil, autherror.ErrSessionExpired
	case errors.Is(err, ErrTokenSignature):
		return nil, autherror.ErrSessionMismatch
	case err != nil:
		return nil, autherror.ErrInvalidSessionCookie
	}

	account, err := s.repo.GetByRefreshToken(ctx, rawToken)
	if err != nil {
		return nil, autherror.Internal(fmt.Errorf("lookup refresh token: %w", err))
	}
	if account == nil || domain.NormalizeEmail(account.Email) != domain.NormalizeEmail(claims.Email) {
		s.logger.WarnContext(ctx, "refresh token does not match stored session")
		return nil, autherror.ErrSessionMismatch
	}

	accessToken, err := s.tokens.IssueAccess(account.ID, account.Email, account.Seller)
	if err != nil {
		return nil, autherror.Internal(fmt.Errorf("issue access token: %w", err))
	}

	return &dto.TokenOutput{
		AccessToken: accessToken,
		User:        dto.NewUserOutput(account),
	}, nil
}

// Logout forgets the stored refresh token matching rawToken. No cookie, or a
// cookie matching no account, is not an error.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}
	if err := s.repo.ClearRefreshToken(ctx, rawToken); err != nil {
		return autherror.Internal(fmt.Errorf("clear refresh token: %w", err))
	}
	return nil
}

package service

//go:generate mockgen -destination=../../mocks/mock_token_issuer.go -package=mocks github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/service TokenIssuer

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers malformed tokens and bad signatures alike.
	ErrTokenInvalid = errors.New("token malformed or bad signature")
	// ErrTokenSignature is a well-formed token that was not signed with the
	// expected secret. It matches ErrTokenInvalid under errors.Is.
	ErrTokenSignature = fmt.Errorf("%w: signature mismatch", ErrTokenInvalid)

	ErrMissingSecret = errors.New("token secrets must be configured")
	ErrSharedSecret  = errors.New("access and refresh secrets must differ")
)

type TokenIssuer interface {
	IssueAccess(accountID, email string, seller bool) (string, error)
	IssueRefresh(email string) (string, error)
	VerifyAccess(tokenString string) (*AccessClaims, error)
	VerifyRefresh(tokenString string) (*RefreshClaims, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

type AccessClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Seller bool   `json:"seller"`
}

type RefreshClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	// Now defaults to time.Now. Tests inject a fake clock.
	Now func() time.Time
}

type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewTokenService fails when a secret is missing or both secrets are equal;
// callers treat that as a startup error.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, ErrMissingSecret
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, ErrSharedSecret
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, fmt.Errorf("token lifetimes must be positive (access %s, refresh %s)", cfg.AccessTTL, cfg.RefreshTTL)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &TokenService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           now,
	}, nil
}

func (ts *TokenService) AccessTTL() time.Duration {
	return ts.accessTTL
}

func (ts *TokenService) RefreshTTL() time.Duration {
	return ts.refreshTTL
}

func (ts *TokenService) IssueAccess(accountID, email string, seller bool) (string, error) {
	now := ts.now()
	claims := AccessClaims{
		UserID: accountID,
		Email:  email,
		Seller: seller,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.accessSecret)
}

func (ts *TokenService) IssueRefresh(email string) (string, error) {
	now := ts.now()
	claims := RefreshClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.refreshTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.refreshSecret)
}

// VerifyAccess parses and validates an access token. Errors are always
// ErrTokenExpired or wrap ErrTokenInvalid.
func (ts *TokenService) VerifyAccess(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := ts.parse(tokenString, claims, ts.accessSecret); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user_id", ErrTokenInvalid)
	}
	return claims, nil
}

// VerifyRefresh is VerifyAccess for refresh tokens.
func (ts *TokenService) VerifyRefresh(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := ts.parse(tokenString, claims, ts.refreshSecret); err != nil {
		return nil, err
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: missing email", ErrTokenInvalid)
	}
	return claims, nil
}

func (ts *TokenService) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	},
		jwt.WithTimeFunc(ts.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)

	switch {
	case err == nil && token.Valid:
		return nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenSignature
	case err != nil:
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	default:
		return ErrTokenInvalid
	}
}

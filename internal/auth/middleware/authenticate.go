package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/service"
	autherror "github.com/AnthoniusHendriyanto/marketplace-api/internal/errors"
)

// AccessVerifier is the part of the token service the middleware needs.
type AccessVerifier interface {
	VerifyAccess(tokenString string) (*service.AccessClaims, error)
}

// RequireLogin verifies the bearer access token and attaches the identity it
// carries. It trusts the signed claims and never touches the database.
func RequireLogin(tokens AccessVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := Authenticate(tokens, c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}
		attach(c, func(ctx context.Context) context.Context { return WithIdentity(ctx, id) })
		return c.Next()
	}
}

// Authenticate turns an Authorization header value into an identity.
func Authenticate(tokens AccessVerifier, header string) (domain.Identity, error) {
	raw, err := bearerToken(header)
	if err != nil {
		return domain.Identity{}, err
	}

	claims, err := tokens.VerifyAccess(raw)
	switch {
	case errors.Is(err, service.ErrTokenExpired):
		return domain.Identity{}, autherror.ErrAccessTokenExpired
	case err != nil:
		return domain.Identity{}, autherror.ErrInvalidAccessToken
	}

	return domain.Identity{
		AccountID: claims.UserID,
		Email:     domain.NormalizeEmail(claims.Email),
		Seller:    claims.Seller,
	}, nil
}

func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", autherror.ErrMissingAuthHeader
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", autherror.ErrInvalidAccessToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", autherror.ErrInvalidAccessToken
	}
	return token, nil
}

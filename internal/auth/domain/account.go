package domain

import (
	"strings"
	"time"
)

type Account struct {
	ID               string
	Name             string
	Email            string
	PasswordHash     []byte
	Salt             []byte
	Seller           bool
	RefreshToken     *string
	StripeCustomerID *string
	StripeSellerID   *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AccountUpdate carries the fields PATCH may change. Nil means unchanged.
// PasswordHash and Salt are always set together.
type AccountUpdate struct {
	Name         *string
	Email        *string
	Seller       *bool
	PasswordHash []byte
	Salt         []byte
}

// Identity is what a verified access token says about its bearer.
type Identity struct {
	AccountID string
	Email     string
	Seller    bool
}

// NormalizeEmail is applied at every boundary an email crosses, so storage
// and lookups always see the same form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeID puts ids coming from claims, paths and the database into one
// comparable form.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

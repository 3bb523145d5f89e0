// Package session binds refresh tokens to the session cookie.
package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	CookieName = "jwt"
	CookiePath = "/"
)

type Options struct {
	// TTL must be the refresh token lifetime so cookie and token expire together.
	TTL      time.Duration
	Secure   bool
	SameSite string
	Now      func() time.Time
}

type Manager struct {
	ttl      time.Duration
	secure   bool
	sameSite string
	now      func() time.Time
}

func NewManager(opts Options) *Manager {
	sameSite := opts.SameSite
	if sameSite == "" {
		sameSite = fiber.CookieSameSiteLaxMode
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		ttl:      opts.TTL,
		secure:   opts.Secure,
		sameSite: sameSite,
		now:      now,
	}
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Set attaches refreshToken as the session cookie. Max-Age and Expires are
// both derived from the refresh token lifetime.
func (m *Manager) Set(c *fiber.Ctx, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    refreshToken,
		Path:     CookiePath,
		MaxAge:   int(m.ttl / time.Second),
		Expires:  m.now().Add(m.ttl),
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: m.sameSite,
	})
}

// Clear expires the session cookie. It is safe to call when no cookie was sent.
func (m *Manager) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     CookiePath,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: m.sameSite,
	})
}

// Read returns the raw session cookie value, or "" when absent.
func (m *Manager) Read(c *fiber.Ctx) string {
	return c.Cookies(CookieName)
}

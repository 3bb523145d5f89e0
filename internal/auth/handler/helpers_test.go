package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/handler"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/service"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/session"
	autherror "github.com/AnthoniusHendriyanto/marketplace-api/internal/errors"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/httpx"
)

// memAccounts is an in-memory AccountRepository for end-to-end handler tests.
type memAccounts struct {
	mu   sync.Mutex
	byID map[string]*domain.Account
}

func newMemAccounts() *memAccounts {
	return &memAccounts{byID: map[string]*domain.Account{}}
}

func clone(a *domain.Account) *domain.Account {
	c := *a
	return &c
}

func (m *memAccounts) find(match func(*domain.Account) bool) *domain.Account {
	for _, a := range m.byID {
		if match(a) {
			return clone(a)
		}
	}
	return nil
}

func (m *memAccounts) GetByID(_ context.Context, id string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(func(a *domain.Account) bool { return a.ID == id }), nil
}

func (m *memAccounts) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(func(a *domain.Account) bool { return a.Email == domain.NormalizeEmail(email) }), nil
}

func (m *memAccounts) GetByRefreshToken(_ context.Context, token string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(func(a *domain.Account) bool { return a.RefreshToken != nil && *a.RefreshToken == token }), nil
}

func (m *memAccounts) List(_ context.Context) ([]*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Account{}
	for _, a := range m.byID {
		out = append(out, clone(a))
	}
	return out, nil
}

func (m *memAccounts) Create(_ context.Context, a *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == a.Email {
			return autherror.ErrEmailAlreadyInUse
		}
	}
	m.byID[a.ID] = clone(a)
	return nil
}

func (m *memAccounts) Update(_ context.Context, id string, u domain.AccountUpdate) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	if u.Name != nil {
		a.Name = *u.Name
	}
	if u.Email != nil {
		a.Email = *u.Email
	}
	if u.Seller != nil {
		a.Seller = *u.Seller
	}
	if u.PasswordHash != nil {
		a.PasswordHash, a.Salt = u.PasswordHash, u.Salt
	}
	return clone(a), nil
}

func (m *memAccounts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

func (m *memAccounts) SetRefreshToken(_ context.Context, id, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.byID[id]; ok {
		a.RefreshToken = &token
	}
	return nil
}

func (m *memAccounts) ClearRefreshToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.byID {
		if a.RefreshToken != nil && *a.RefreshToken == token {
			a.RefreshToken = nil
		}
	}
	return nil
}

// noShops satisfies service.ShopCounter for accounts that own nothing.
type noShops struct{ owned map[string]int }

func (n noShops) CountByOwner(_ context.Context, ownerID string) (int, error) {
	return n.owned[ownerID], nil
}

type testServer struct {
	app      *fiber.App
	accounts *memAccounts
	tokens   *service.TokenService
	shops    noShops
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	tokens, err := service.NewTokenService(service.TokenConfig{
		AccessSecret:  "handler-access-secret",
		RefreshSecret: "handler-refresh-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    7 * 24 * time.Hour,
	})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	accounts := newMemAccounts()
	shops := noShops{owned: map[string]int{}}
	sessions := session.NewManager(session.Options{TTL: tokens.RefreshTTL()})

	app := fiber.New(fiber.Config{ErrorHandler: httpx.ErrorHandler(logger)})
	handler.RegisterRoutes(app,
		handler.NewAuthHandler(service.NewAuthService(accounts, tokens, logger), sessions),
		handler.NewAccountHandler(service.NewAccountService(accounts, shops, logger), sessions),
		tokens, accounts)

	return &testServer{app: app, accounts: accounts, tokens: tokens, shops: shops}
}

type request struct {
	method string
	path   string
	body   any
	bearer string
	cookie *http.Cookie
}

func (s *testServer) do(t *testing.T, r request) (*http.Response, []byte) {
	t.Helper()
	var body io.Reader
	if r.body != nil {
		raw, ok := r.body.(string)
		if !ok {
			b, err := json.Marshal(r.body)
			require.NoError(t, err)
			raw = string(b)
		}
		body = bytes.NewBufferString(raw)
	}
	req := httptest.NewRequest(r.method, r.path, body)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+r.bearer)
	}
	if r.cookie != nil {
		req.AddCookie(r.cookie)
	}
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

type tokenBody struct {
	AccessToken string         `json:"accessToken"`
	User        map[string]any `json:"user"`
}

// registerAndLogin returns the login body and session cookie for a new account.
func (s *testServer) registerAndLogin(t *testing.T, name, email, password string, seller bool) (tokenBody, *http.Cookie) {
	t.Helper()
	resp, _ := s.do(t, request{method: http.MethodPost, path: "/auth/register", body: map[string]any{
		"name": name, "email": email, "password": password, "seller": seller,
	}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := s.do(t, request{method: http.MethodPost, path: "/auth/login", body: map[string]any{
		"email": email, "password": password,
	}})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var out tokenBody
	require.NoError(t, json.Unmarshal(body, &out))
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	return out, cookie
}

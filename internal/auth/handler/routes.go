package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/middleware"
)

const userIDParam = "userId"

// RegisterRoutes mounts /auth and /api/users. Protected routes run
// login, then the loader, then the guard.
func RegisterRoutes(app fiber.Router, h *AuthHandler, a *AccountHandler, tokens middleware.AccessVerifier, accounts middleware.AccountGetter) {
	auth := app.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Get("/refresh", h.Refresh)
	auth.Get("/logout", h.Logout)

	requireLogin := middleware.RequireLogin(tokens)
	loadAccount := middleware.LoadAccount(accounts, userIDParam)
	owner := middleware.RequireAccountOwner()

	users := app.Group("/api/users")
	users.Get("/", a.List)
	users.Get("/:"+userIDParam, requireLogin, loadAccount, a.Read)
	users.Patch("/:"+userIDParam, requireLogin, loadAccount, owner, a.Update)
	users.Delete("/:"+userIDParam, requireLogin, loadAccount, owner, a.Delete)
}

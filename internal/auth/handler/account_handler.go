package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/dto"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/middleware"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/service"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/session"
	autherror "github.com/AnthoniusHendriyanto/marketplace-api/internal/errors"
)

// AccountHandler serves /api/users. Every :userId route has the account
// loaded into the request context before it gets here.
type AccountHandler struct {
	accounts *service.AccountService
	sessions *session.Manager
}

func NewAccountHandler(accounts *service.AccountService, sessions *session.Manager) *AccountHandler {
	return &AccountHandler{accounts: accounts, sessions: sessions}
}

func (h *AccountHandler) List(c *fiber.Ctx) error {
	accounts, err := h.accounts.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserOutputs(accounts))
}

func (h *AccountHandler) Read(c *fiber.Ctx) error {
	return c.JSON(dto.NewUserOutput(middleware.AccountFrom(c.UserContext())))
}

func (h *AccountHandler) Update(c *fiber.Ctx) error {
	var input dto.UpdateAccountInput
	if err := c.BodyParser(&input); err != nil {
		return autherror.ErrInvalidInput
	}

	updated, err := h.accounts.Update(c.UserContext(), middleware.AccountFrom(c.UserContext()), input)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserOutput(updated))
}

// Delete also ends the caller's session since the account is gone.
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	if err := h.accounts.Delete(c.UserContext(), middleware.AccountFrom(c.UserContext())); err != nil {
		return err
	}
	h.sessions.Clear(c)
	return c.SendStatus(fiber.StatusNoContent)
}

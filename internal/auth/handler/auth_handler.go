package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/dto"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/service"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/session"
	autherror "github.com/AnthoniusHendriyanto/marketplace-api/internal/errors"
)

type AuthHandler struct {
	authService *service.AuthService
	sessions    *session.Manager
}

func NewAuthHandler(authService *service.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return autherror.ErrInvalidInput
	}

	if _, err := h.authService.Register(c.UserContext(), input); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MessageOutput{Message: "account created, please log in"})
}

// Login answers with the access token and user view; the refresh token only
// ever leaves in the session cookie.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return autherror.ErrInvalidInput
	}

	result, err := h.authService.Login(c.UserContext(), input)
	if err != nil {
		return err
	}

	h.sessions.Set(c, result.RefreshToken)
	return c.Status(fiber.StatusOK).JSON(dto.TokenOutput{
		AccessToken: result.AccessToken,
		User:        result.User,
	})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	out, err := h.authService.Refresh(c.UserContext(), h.sessions.Read(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// Logout always clears the cookie, even when the stored token could not be
// forgotten, and is a no-op without a session.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	err := h.authService.Logout(c.UserContext(), h.sessions.Read(c))
	h.sessions.Clear(c)
	if err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

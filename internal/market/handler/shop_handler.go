package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/middleware"
	autherror "github.com/AnthoniusHendriyanto/marketplace-api/internal/errors"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/market/dto"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/market/service"
)

type ShopHandler struct {
	shops *service.ShopService
}

func NewShopHandler(shops *service.ShopService) *ShopHandler {
	return &ShopHandler{shops: shops}
}

func (h *ShopHandler) List(c *fiber.Ctx) error {
	shops, err := h.shops.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewShopOutputs(shops))
}

func (h *ShopHandler) Read(c *fiber.Ctx) error {
	return c.JSON(dto.NewShopOutput(middleware.ShopFrom(c.UserContext())))
}

func (h *ShopHandler) ListByOwner(c *fiber.Ctx) error {
	shops, err := h.shops.ListByOwner(c.UserContext(), middleware.AccountFrom(c.UserContext()))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewShopOutputs(shops))
}

func (h *ShopHandler) Create(c *fiber.Ctx) error {
	var input dto.CreateShopInput
	if err := c.BodyParser(&input); err != nil {
		return autherror.ErrInvalidInput
	}

	shop, err := h.shops.Create(c.UserContext(), middleware.AccountFrom(c.UserContext()), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewShopOutput(shop))
}

func (h *ShopHandler) Update(c *fiber.Ctx) error {
	var input dto.UpdateShopInput
	if err := c.BodyParser(&input); err != nil {
		return autherror.ErrInvalidInput
	}

	shop, err := h.shops.Update(c.UserContext(), middleware.ShopFrom(c.UserContext()), input)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewShopOutput(shop))
}

func (h *ShopHandler) Delete(c *fiber.Ctx) error {
	if err := h.shops.Delete(c.UserContext(), middleware.ShopFrom(c.UserContext())); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/middleware"
	autherror "github.com/AnthoniusHendriyanto/marketplace-api/internal/errors"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/market/dto"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/market/service"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Create serves POST /api/orders/:userId for the account in the path.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var input dto.CreateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return autherror.ErrInvalidInput
	}

	order, err := h.orders.Create(c.UserContext(), middleware.AccountFrom(c.UserContext()), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewOrderOutput(order))
}

func (h *OrderHandler) Read(c *fiber.Ctx) error {
	return c.JSON(dto.NewOrderOutput(middleware.OrderFrom(c.UserContext())))
}

func (h *OrderHandler) ListByAccount(c *fiber.Ctx) error {
	orders, err := h.orders.ListByAccount(c.UserContext(), middleware.AccountFrom(c.UserContext()))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewOrderOutputs(orders))
}

func (h *OrderHandler) ListByShop(c *fiber.Ctx) error {
	orders, err := h.orders.ListByShop(c.UserContext(), middleware.ShopFrom(c.UserContext()))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewOrderOutputs(orders))
}

func (h *OrderHandler) Statuses(c *fiber.Ctx) error {
	return c.JSON(h.orders.Statuses())
}

// UpdateStatus serves PATCH /api/order/status/:shopId with
// {"cartItemId": ..., "status": ...}.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var input dto.UpdateStatusInput
	if err := c.BodyParser(&input); err != nil {
		return autherror.ErrInvalidInput
	}

	item, err := h.orders.UpdateStatus(c.UserContext(), middleware.ShopFrom(c.UserContext()), input)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCartItemOutput(*item))
}

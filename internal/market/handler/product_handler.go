package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/middleware"
	autherror "github.com/AnthoniusHendriyanto/marketplace-api/internal/errors"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/market/domain"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/market/dto"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/market/service"
)

type ProductHandler struct {
	products *service.ProductService
}

func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// Search serves GET /api/products?search=&category=.
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	products, err := h.products.Search(c.UserContext(), domain.ProductFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductOutputs(products))
}

func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.products.Categories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

func (h *ProductHandler) Latest(c *fiber.Ctx) error {
	products, err := h.products.Latest(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductOutputs(products))
}

func (h *ProductHandler) Related(c *fiber.Ctx) error {
	products, err := h.products.Related(c.UserContext(), middleware.ProductFrom(c.UserContext()))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductOutputs(products))
}

func (h *ProductHandler) ListByShop(c *fiber.Ctx) error {
	products, err := h.products.ListByShop(c.UserContext(), middleware.ShopFrom(c.UserContext()))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductOutputs(products))
}

func (h *ProductHandler) Read(c *fiber.Ctx) error {
	return c.JSON(dto.NewProductOutput(middleware.ProductFrom(c.UserContext())))
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var input dto.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return autherror.ErrInvalidInput
	}

	product, err := h.products.Create(c.UserContext(), middleware.ShopFrom(c.UserContext()), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProductOutput(product))
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var input dto.UpdateProductInput
	if err := c.BodyParser(&input); err != nil {
		return autherror.ErrInvalidInput
	}

	product, err := h.products.Update(c.UserContext(), middleware.ProductFrom(c.UserContext()), input)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductOutput(product))
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.products.Delete(c.UserContext(), middleware.ProductFrom(c.UserContext())); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

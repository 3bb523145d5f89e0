package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/middleware"
)

const (
	userIDParam    = "userId"
	shopIDParam    = "shopId"
	productIDParam = "productId"
	orderIDParam   = "orderId"
)

// Stores are the lookups the route chains need before a guard can run.
type Stores struct {
	Tokens   middleware.AccessVerifier
	Accounts middleware.AccountGetter
	Shops    middleware.ShopGetter
	Products middleware.ProductGetter
	Orders   middleware.OrderGetter
}

// RegisterRoutes mounts the shop, product and order routes under /api.
// Static segments are registered before parameters that could swallow them.
func RegisterRoutes(app fiber.Router, shops *ShopHandler, products *ProductHandler, orders *OrderHandler, st Stores) {
	requireLogin := middleware.RequireLogin(st.Tokens)
	loadAccount := middleware.LoadAccount(st.Accounts, userIDParam)
	loadShop := middleware.LoadShop(st.Shops, shopIDParam)
	loadProduct := middleware.LoadProduct(st.Products, productIDParam)
	loadOrder := middleware.LoadOrder(st.Orders, orderIDParam)
	accountOwner := middleware.RequireAccountOwner()
	shopOwner := middleware.RequireShopOwner()
	orderOwner := middleware.RequireOrderOwner()
	seller := middleware.RequireSeller()

	api := app.Group("/api")

	api.Get("/shops", shops.List)
	api.Get("/shop/:"+shopIDParam, loadShop, shops.Read)
	api.Get("/shops/by/:"+userIDParam, requireLogin, loadAccount, accountOwner, shops.ListByOwner)
	api.Post("/shops/by/:"+userIDParam, requireLogin, loadAccount, accountOwner, seller, shops.Create)
	api.Patch("/shops/:"+shopIDParam, requireLogin, loadShop, shopOwner, shops.Update)
	api.Delete("/shops/:"+shopIDParam, requireLogin, loadShop, shopOwner, shops.Delete)

	api.Get("/products", products.Search)
	api.Get("/products/categories", products.Categories)
	api.Get("/products/latest", products.Latest)
	api.Get("/products/related/:"+productIDParam, loadProduct, products.Related)
	api.Get("/products/by/:"+shopIDParam, loadShop, products.ListByShop)
	api.Post("/products/by/:"+shopIDParam, requireLogin, loadShop, shopOwner, products.Create)
	api.Get("/products/:"+productIDParam, loadProduct, products.Read)
	api.Put("/product/:"+shopIDParam+"/:"+productIDParam, requireLogin, loadShop, loadProduct, shopOwner, products.Update)
	api.Delete("/product/:"+shopIDParam+"/:"+productIDParam, requireLogin, loadShop, loadProduct, shopOwner, products.Delete)

	api.Post("/orders/:"+userIDParam, requireLogin, loadAccount, accountOwner, orders.Create)
	api.Get("/orders/shop/:"+shopIDParam, requireLogin, loadShop, shopOwner, orders.ListByShop)
	api.Get("/orders/user/:"+userIDParam, requireLogin, loadAccount, accountOwner, orders.ListByAccount)
	api.Get("/order/status-val", orders.Statuses)
	api.Get("/order/:"+orderIDParam, requireLogin, loadOrder, orderOwner, orders.Read)
	api.Patch("/order/status/:"+shopIDParam, requireLogin, loadShop, shopOwner, orders.UpdateStatus)
}

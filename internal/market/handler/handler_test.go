package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdomain "github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/domain"
	authservice "github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/service"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/httpx"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/market/domain"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/market/dto"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/market/handler"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/market/service"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/mocks"
)

const (
	sellerID  = "0b4c6f3e-1c39-4a4e-9a53-0d9f1b3a7f10"
	buyerID   = "1c5d7a4f-2d4a-4b5f-8b64-1e0a2c4b8e21"
	shopID    = "5d1e0c4a-7f0b-4d8e-b8c5-2a9f6e3d1b20"
	productID = "9a7c2e51-3b6d-4f80-a1e2-c4d5e6f70839"
)

type fixture struct {
	app      *fiber.App
	accounts *mocks.MockAccountRepository
	shops    *mocks.MockShopRepository
	products *mocks.MockProductRepository
	orders   *mocks.MockOrderRepository
	seller   string
	buyer    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	tokens, err := authservice.NewTokenService(authservice.TokenConfig{
		AccessSecret: "market-access", RefreshSecret: "market-refresh",
		AccessTTL: time.Hour, RefreshTTL: time.Hour,
	})
	require.NoError(t, err)
	seller, err := tokens.IssueAccess(sellerID, "seller@example.com", true)
	require.NoError(t, err)
	buyer, err := tokens.IssueAccess(buyerID, "buyer@example.com", false)
	require.NoError(t, err)

	f := &fixture{
		accounts: mocks.NewMockAccountRepository(ctrl),
		shops:    mocks.NewMockShopRepository(ctrl),
		products: mocks.NewMockProductRepository(ctrl),
		orders:   mocks.NewMockOrderRepository(ctrl),
		seller:   seller,
		buyer:    buyer,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.app = fiber.New(fiber.Config{ErrorHandler: httpx.ErrorHandler(logger)})
	handler.RegisterRoutes(f.app,
		handler.NewShopHandler(service.NewShopService(f.shops, f.products, logger)),
		handler.NewProductHandler(service.NewProductService(f.products, logger)),
		handler.NewOrderHandler(service.NewOrderService(f.orders, f.products, logger)),
		handler.Stores{Tokens: tokens, Accounts: f.accounts, Shops: f.shops, Products: f.products, Orders: f.orders})
	return f
}

func (f *fixture) do(t *testing.T, method, path, bearer string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func sellerShop() *domain.Shop {
	return &domain.Shop{ID: shopID, Name: "Corner", OwnerID: sellerID}
}

func TestShopRoutes(t *testing.T) {
	t.Run("public list", func(t *testing.T) {
		f := newFixture(t)
		f.shops.EXPECT().List(gomock.Any()).Return([]*domain.Shop{sellerShop()}, nil)

		status, body := f.do(t, http.MethodGet, "/api/shops", "", nil)
		require.Equal(t, http.StatusOK, status)

		var shops []dto.ShopOutput
		require.NoError(t, json.Unmarshal(body, &shops))
		require.Len(t, shops, 1)
		assert.Equal(t, sellerID, shops[0].OwnerID)
	})

	t.Run("read", func(t *testing.T) {
		f := newFixture(t)
		f.shops.EXPECT().GetByID(gomock.Any(), shopID).Return(sellerShop(), nil)

		status, _ := f.do(t, http.MethodGet, "/api/shop/"+shopID, "", nil)
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("seller opens a shop", func(t *testing.T) {
		f := newFixture(t)
		f.accounts.EXPECT().GetByID(gomock.Any(), sellerID).Return(&authdomain.Account{ID: sellerID, Seller: true}, nil)
		f.shops.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		status, body := f.do(t, http.MethodPost, "/api/shops/by/"+sellerID, f.seller, map[string]any{"name": "Corner"})
		require.Equal(t, http.StatusCreated, status, string(body))

		var shop dto.ShopOutput
		require.NoError(t, json.Unmarshal(body, &shop))
		assert.Equal(t, sellerID, shop.OwnerID)
		assert.Equal(t, "Corner", shop.Name)
	})

	t.Run("buyer cannot open a shop", func(t *testing.T) {
		f := newFixture(t)
		f.accounts.EXPECT().GetByID(gomock.Any(), buyerID).Return(&authdomain.Account{ID: buyerID}, nil)

		status, body := f.do(t, http.MethodPost, "/api/shops/by/"+buyerID, f.buyer, map[string]any{"name": "Nope"})
		assert.Equal(t, http.StatusForbidden, status)
		assert.Contains(t, string(body), "buyer@example.com")
	})

	t.Run("cannot open a shop for someone else", func(t *testing.T) {
		f := newFixture(t)
		f.accounts.EXPECT().GetByID(gomock.Any(), buyerID).Return(&authdomain.Account{ID: buyerID}, nil)

		status, _ := f.do(t, http.MethodPost, "/api/shops/by/"+buyerID, f.seller, map[string]any{"name": "Nope"})
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("anonymous", func(t *testing.T) {
		f := newFixture(t)

		status, _ := f.do(t, http.MethodGet, "/api/shops/by/"+sellerID, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("owner lists own shops", func(t *testing.T) {
		f := newFixture(t)
		f.accounts.EXPECT().GetByID(gomock.Any(), sellerID).Return(&authdomain.Account{ID: sellerID, Seller: true}, nil)
		f.shops.EXPECT().ListByOwner(gomock.Any(), sellerID).Return([]*domain.Shop{}, nil)

		status, body := f.do(t, http.MethodGet, "/api/shops/by/"+sellerID, f.seller, nil)
		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `[]`, string(body))
	})

	t.Run("stranger cannot update", func(t *testing.T) {
		f := newFixture(t)
		f.shops.EXPECT().GetByID(gomock.Any(), shopID).Return(sellerShop(), nil)

		status, _ := f.do(t, http.MethodPatch, "/api/shops/"+shopID, f.buyer, map[string]any{"name": "Mine"})
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("owner updates", func(t *testing.T) {
		f := newFixture(t)
		f.shops.EXPECT().GetByID(gomock.Any(), shopID).Return(sellerShop(), nil)
		f.shops.EXPECT().Update(gomock.Any(), shopID, gomock.Any()).
			Return(&domain.Shop{ID: shopID, Name: "Renamed", OwnerID: sellerID}, nil)

		status, body := f.do(t, http.MethodPatch, "/api/shops/"+shopID, f.seller, map[string]any{"name": "Renamed"})
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(body), "Renamed")
	})

	t.Run("delete blocked by products", func(t *testing.T) {
		f := newFixture(t)
		f.shops.EXPECT().GetByID(gomock.Any(), shopID).Return(sellerShop(), nil)
		f.products.EXPECT().CountByShop(gomock.Any(), shopID).Return(3, nil)

		status, body := f.do(t, http.MethodDelete, "/api/shops/"+shopID, f.seller, nil)
		assert.Equal(t, http.StatusConflict, status)
		assert.JSONEq(t, `{"error":"shop still has products"}`, string(body))
	})

	t.Run("unknown shop is 404 before the guard", func(t *testing.T) {
		f := newFixture(t)
		f.shops.EXPECT().GetByID(gomock.Any(), shopID).Return(nil, nil)

		status, _ := f.do(t, http.MethodDelete, "/api/shops/"+shopID, f.buyer, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestProductRoutes(t *testing.T) {
	lamp := &domain.Product{ID: productID, ShopID: shopID, Name: "Lamp", Quantity: 2, Price: 1999}

	t.Run("search and categories", func(t *testing.T) {
		f := newFixture(t)
		f.products.EXPECT().Search(gomock.Any(), domain.ProductFilter{Search: "lamp", Category: "home"}).
			Return([]*domain.Product{lamp}, nil)
		f.products.EXPECT().Categories(gomock.Any()).Return([]string{"home"}, nil)

		status, body := f.do(t, http.MethodGet, "/api/products?search=lamp&category=home", "", nil)
		require.Equal(t, http.StatusOK, status)
		var products []dto.ProductOutput
		require.NoError(t, json.Unmarshal(body, &products))
		require.Len(t, products, 1)
		assert.Equal(t, int64(1999), products[0].Price)

		status, body = f.do(t, http.MethodGet, "/api/products/categories", "", nil)
		require.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `["home"]`, string(body))
	})

	t.Run("read", func(t *testing.T) {
		f := newFixture(t)
		f.products.EXPECT().GetByID(gomock.Any(), productID).Return(lamp, nil)

		status, body := f.do(t, http.MethodGet, "/api/products/"+productID, "", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(body), `"shop":"`+shopID+`"`)
	})

	t.Run("list by shop", func(t *testing.T) {
		f := newFixture(t)
		f.shops.EXPECT().GetByID(gomock.Any(), shopID).Return(sellerShop(), nil)
		f.products.EXPECT().ListByShop(gomock.Any(), shopID).Return([]*domain.Product{lamp}, nil)

		status, _ := f.do(t, http.MethodGet, "/api/products/by/"+shopID, "", nil)
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("owner creates", func(t *testing.T) {
		f := newFixture(t)
		f.shops.EXPECT().GetByID(gomock.Any(), shopID).Return(sellerShop(), nil)
		f.products.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		status, body := f.do(t, http.MethodPost, "/api/products/by/"+shopID, f.seller,
			map[string]any{"name": "Rug", "quantity": 1, "price": 500})
		require.Equal(t, http.StatusCreated, status, string(body))
		assert.Contains(t, string(body), `"name":"Rug"`)
	})

	t.Run("stranger cannot create", func(t *testing.T) {
		f := newFixture(t)
		f.shops.EXPECT().GetByID(gomock.Any(), shopID).Return(sellerShop(), nil)

		status, _ := f.do(t, http.MethodPost, "/api/products/by/"+shopID, f.buyer,
			map[string]any{"name": "Rug", "quantity": 1, "price": 500})
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("owner updates", func(t *testing.T) {
		f := newFixture(t)
		f.shops.EXPECT().GetByID(gomock.Any(), shopID).Return(sellerShop(), nil)
		f.products.EXPECT().GetByID(gomock.Any(), productID).Return(lamp, nil)
		f.products.EXPECT().Update(gomock.Any(), productID, gomock.Any()).
			Return(&domain.Product{ID: productID, ShopID: shopID, Name: "Lamp", Price: 2500}, nil)

		status, body := f.do(t, http.MethodPut, "/api/product/"+shopID+"/"+productID, f.seller, map[string]any{"price": 2500})
		require.Equal(t, http.StatusOK, status, string(body))
		assert.Contains(t, string(body), `"price":2500`)
	})

	t.Run("product from another shop", func(t *testing.T) {
		f := newFixture(t)
		f.shops.EXPECT().GetByID(gomock.Any(), shopID).Return(sellerShop(), nil)
		f.products.EXPECT().GetByID(gomock.Any(), productID).
			Return(&domain.Product{ID: productID, ShopID: "7e2b9d10-0000-4000-8000-000000000000"}, nil)

		status, _ := f.do(t, http.MethodDelete, "/api/product/"+shopID+"/"+productID, f.seller, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("owner deletes", func(t *testing.T) {
		f := newFixture(t)
		f.shops.EXPECT().GetByID(gomock.Any(), shopID).Return(sellerShop(), nil)
		f.products.EXPECT().GetByID(gomock.Any(), productID).Return(lamp, nil)
		f.products.EXPECT().Delete(gomock.Any(), productID).Return(nil)

		status, _ := f.do(t, http.MethodDelete, "/api/product/"+shopID+"/"+productID, f.seller, nil)
		assert.Equal(t, http.StatusNoContent, status)
	})
}

func TestProductShowcaseRoutes(t *testing.T) {
	lamp := &domain.Product{ID: productID, ShopID: shopID, Name: "Lamp", Category: "home"}

	t.Run("latest is not taken for a product id", func(t *testing.T) {
		f := newFixture(t)
		f.products.EXPECT().Latest(gomock.Any(), 5).Return([]*domain.Product{lamp}, nil)

		status, body := f.do(t, http.MethodGet, "/api/products/latest", "", nil)
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(body), `"name":"Lamp"`)
	})

	t.Run("related", func(t *testing.T) {
		f := newFixture(t)
		f.products.EXPECT().GetByID(gomock.Any(), productID).Return(lamp, nil)
		f.products.EXPECT().Related(gomock.Any(), lamp, 5).Return([]*domain.Product{}, nil)

		status, body := f.do(t, http.MethodGet, "/api/products/related/"+productID, "", nil)
		require.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `[]`, string(body))
	})
}

const (
	orderID    = "3f1a2b4c-5d6e-4f70-8a9b-0c1d2e3f4a5b"
	cartItemID = "8e7d6c5b-4a39-4281-9706-f5e4d3c2b1a0"
)

func buyerAccount() *authdomain.Account {
	return &authdomain.Account{ID: buyerID, Name: "Bea", Email: "buyer@example.com"}
}

func orderBody() map[string]any {
	return map[string]any{
		"products": []map[string]any{{"product": productID, "quantity": 2}},
		"deliveryAddress": map[string]any{
			"street": "1 Main St", "city": "Springfield", "zipcode": "12345", "country": "US",
		},
	}
}

func TestOrderRoutes(t *testing.T) {
	lamp := &domain.Product{ID: productID, ShopID: shopID, Name: "Lamp", Quantity: 5, Price: 1999}
	placed := &domain.Order{
		ID:        orderID,
		AccountID: buyerID,
		Items: []domain.CartItem{{
			ID: cartItemID, OrderID: orderID, ProductID: productID, ShopID: shopID,
			ProductName: "Lamp", Price: 1999, Quantity: 2, Status: domain.StatusNotProcessed,
		}},
	}

	t.Run("buyer places an order", func(t *testing.T) {
		f := newFixture(t)
		f.accounts.EXPECT().GetByID(gomock.Any(), buyerID).Return(buyerAccount(), nil)
		f.products.EXPECT().GetByID(gomock.Any(), productID).Return(lamp, nil)
		f.products.EXPECT().AdjustQuantity(gomock.Any(), productID, -2).Return(&domain.Product{ID: productID, Quantity: 3}, nil)
		f.orders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		status, body := f.do(t, http.MethodPost, "/api/orders/"+buyerID, f.buyer, orderBody())
		require.Equal(t, http.StatusCreated, status, string(body))

		var out dto.OrderOutput
		require.NoError(t, json.Unmarshal(body, &out))
		assert.Equal(t, buyerID, out.AccountID)
		assert.Equal(t, "Bea", out.CustomerName)
		assert.Equal(t, "buyer@example.com", out.CustomerEmail)
		require.Len(t, out.Products, 1)
		assert.Equal(t, shopID, out.Products[0].ShopID)
		assert.Equal(t, "Not processed", out.Products[0].Status)
	})

	t.Run("cannot order for someone else", func(t *testing.T) {
		f := newFixture(t)
		f.accounts.EXPECT().GetByID(gomock.Any(), buyerID).Return(buyerAccount(), nil)

		status, _ := f.do(t, http.MethodPost, "/api/orders/"+buyerID, f.seller, orderBody())
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("out of stock", func(t *testing.T) {
		f := newFixture(t)
		f.accounts.EXPECT().GetByID(gomock.Any(), buyerID).Return(buyerAccount(), nil)
		f.products.EXPECT().GetByID(gomock.Any(), productID).Return(lamp, nil)
		f.products.EXPECT().AdjustQuantity(gomock.Any(), productID, -2).Return(nil, nil)

		status, body := f.do(t, http.MethodPost, "/api/orders/"+buyerID, f.buyer, orderBody())
		assert.Equal(t, http.StatusConflict, status)
		assert.JSONEq(t, `{"error":"insufficient stock for Lamp"}`, string(body))
	})

	t.Run("stranger cannot list shop orders", func(t *testing.T) {
		f := newFixture(t)
		f.shops.EXPECT().GetByID(gomock.Any(), shopID).Return(sellerShop(), nil)

		status, _ := f.do(t, http.MethodGet, "/api/orders/shop/"+shopID, f.buyer, nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("owner lists shop orders", func(t *testing.T) {
		f := newFixture(t)
		f.shops.EXPECT().GetByID(gomock.Any(), shopID).Return(sellerShop(), nil)
		f.orders.EXPECT().ListByShop(gomock.Any(), shopID).Return([]*domain.Order{placed}, nil)

		status, body := f.do(t, http.MethodGet, "/api/orders/shop/"+shopID, f.seller, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(body), cartItemID)
	})

	t.Run("stranger cannot change item status", func(t *testing.T) {
		f := newFixture(t)
		f.shops.EXPECT().GetByID(gomock.Any(), shopID).Return(sellerShop(), nil)

		status, _ := f.do(t, http.MethodPatch, "/api/order/status/"+shopID, f.buyer,
			map[string]any{"cartItemId": cartItemID, "status": "Shipped"})
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("owner cancels an item and restocks", func(t *testing.T) {
		f := newFixture(t)
		item := placed.Items[0]
		item.Status = domain.StatusProcessing
		cancelled := item
		cancelled.Status = domain.StatusCancelled

		f.shops.EXPECT().GetByID(gomock.Any(), shopID).Return(sellerShop(), nil)
		f.orders.EXPECT().GetItem(gomock.Any(), cartItemID).Return(&item, nil)
		f.orders.EXPECT().UpdateItemStatus(gomock.Any(), cartItemID, domain.StatusProcessing, domain.StatusCancelled).
			Return(&cancelled, nil)
		f.products.EXPECT().AdjustQuantity(gomock.Any(), productID, 2).Return(lamp, nil)

		status, body := f.do(t, http.MethodPatch, "/api/order/status/"+shopID, f.seller,
			map[string]any{"cartItemId": cartItemID, "status": "Cancelled"})
		require.Equal(t, http.StatusOK, status, string(body))
		assert.Contains(t, string(body), `"status":"Cancelled"`)
	})

	t.Run("status values", func(t *testing.T) {
		f := newFixture(t)

		status, body := f.do(t, http.MethodGet, "/api/order/status-val", "", nil)
		require.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `["Not processed","Processing","Shipped","Delivered","Cancelled"]`, string(body))
	})

	t.Run("read own order", func(t *testing.T) {
		f := newFixture(t)
		f.orders.EXPECT().GetByID(gomock.Any(), orderID).Return(placed, nil)

		status, body := f.do(t, http.MethodGet, "/api/order/"+orderID, f.buyer, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(body), `"user":"`+buyerID+`"`)
	})

	t.Run("seller cannot read a buyer's order", func(t *testing.T) {
		f := newFixture(t)
		f.orders.EXPECT().GetByID(gomock.Any(), orderID).Return(placed, nil)

		status, _ := f.do(t, http.MethodGet, "/api/order/"+orderID, f.seller, nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("account orders need the account owner", func(t *testing.T) {
		f := newFixture(t)
		f.accounts.EXPECT().GetByID(gomock.Any(), buyerID).Return(buyerAccount(), nil)

		status, _ := f.do(t, http.MethodGet, "/api/orders/user/"+buyerID, f.seller, nil)
		assert.Equal(t, http.StatusForbidden, status)
	})
}

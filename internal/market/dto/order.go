package dto

import (
	"time"

	"github.com/AnthoniusHendriyanto/marketplace-api/internal/market/domain"
)

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode"`
	Country string `json:"country"`
}

type CartItemInput struct {
	ProductID string `json:"product"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderInput leaves customer name and email optional; they default to
// the ordering account.
type CreateOrderInput struct {
	Products        []CartItemInput `json:"products"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	DeliveryAddress Address         `json:"deliveryAddress"`
}

type UpdateStatusInput struct {
	CartItemID string `json:"cartItemId"`
	Status     string `json:"status"`
}

type CartItemOutput struct {
	ID        string `json:"id"`
	ProductID string `json:"product"`
	ShopID    string `json:"shop"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Status    string `json:"status"`
}

type OrderOutput struct {
	ID              string           `json:"id"`
	AccountID       string           `json:"user"`
	CustomerName    string           `json:"customerName"`
	CustomerEmail   string           `json:"customerEmail"`
	DeliveryAddress Address          `json:"deliveryAddress"`
	Products        []CartItemOutput `json:"products"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

func NewCartItemOutput(item domain.CartItem) CartItemOutput {
	return CartItemOutput{
		ID:        item.ID,
		ProductID: item.ProductID,
		ShopID:    item.ShopID,
		Name:      item.ProductName,
		Price:     item.Price,
		Quantity:  item.Quantity,
		Status:    string(item.Status),
	}
}

func NewOrderOutput(o *domain.Order) OrderOutput {
	items := make([]CartItemOutput, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, NewCartItemOutput(item))
	}
	return OrderOutput{
		ID:            o.ID,
		AccountID:     o.AccountID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		DeliveryAddress: Address{
			Street:  o.Address.Street,
			City:    o.Address.City,
			State:   o.Address.State,
			Zipcode: o.Address.Zipcode,
			Country: o.Address.Country,
		},
		Products:  items,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func NewOrderOutputs(orders []*domain.Order) []OrderOutput {
	out := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderOutput(o))
	}
	return out
}

package dto

import (
	"time"

	"github.com/AnthoniusHendriyanto/marketplace-api/internal/market/domain"
)

// Quantity and Price are pointers so a missing value can be told apart
// from zero.
type CreateProductInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Quantity    *int   `json:"quantity"`
	Price       *int64 `json:"price"`
}

type UpdateProductInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
	Price       *int64  `json:"price,omitempty"`
}

type ProductOutput struct {
	ID          string    `json:"id"`
	ShopID      string    `json:"shop"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Quantity    int       `json:"quantity"`
	Price       int64     `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewProductOutput(p *domain.Product) ProductOutput {
	return ProductOutput{
		ID:          p.ID,
		ShopID:      p.ShopID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Quantity:    p.Quantity,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewProductOutputs(products []*domain.Product) []ProductOutput {
	out := make([]ProductOutput, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductOutput(p))
	}
	return out
}

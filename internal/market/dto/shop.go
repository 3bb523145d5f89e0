package dto

import (
	"time"

	"github.com/AnthoniusHendriyanto/marketplace-api/internal/market/domain"
)

type CreateShopInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateShopInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type ShopOutput struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewShopOutput(s *domain.Shop) ShopOutput {
	return ShopOutput{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		OwnerID:     s.OwnerID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func NewShopOutputs(shops []*domain.Shop) []ShopOutput {
	out := make([]ShopOutput, 0, len(shops))
	for _, s := range shops {
		out = append(out, NewShopOutput(s))
	}
	return out
}

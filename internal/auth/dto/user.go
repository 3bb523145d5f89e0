package dto

import (
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/domain"
)

// UserOutput is the public view of an account. It has no field for the
// password hash, salt, refresh token or payment references.
type UserOutput struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Seller bool   `json:"seller"`
}

func NewUserOutput(account *domain.Account) UserOutput {
	return UserOutput{
		ID:     account.ID,
		Name:   account.Name,
		Email:  account.Email,
		Seller: account.Seller,
	}
}

func NewUserOutputs(accounts []*domain.Account) []UserOutput {
	out := make([]UserOutput, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, NewUserOutput(a))
	}
	return out
}

type UpdateAccountInput struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Seller   *bool   `json:"seller,omitempty"`
}

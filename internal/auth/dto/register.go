package dto

// Seller is a pointer so a present-but-non-boolean value fails JSON decoding
// while an absent one defaults to false.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Seller   *bool  `json:"seller,omitempty"`
}

type MessageOutput struct {
	Message string `json:"message"`
}

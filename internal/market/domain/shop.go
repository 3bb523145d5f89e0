package domain

import "time"

type Shop struct {
	ID          string
	Name        string
	Description string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ShopUpdate struct {
	Name        *string
	Description *string
}

// Product prices are integer minor units (cents).
type Product struct {
	ID          string
	ShopID      string
	Name        string
	Description string
	Category    string
	Quantity    int
	Price       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ProductUpdate struct {
	Name        *string
	Description *string
	Category    *string
	Quantity    *int
	Price       *int64
}

// ProductFilter narrows a catalogue search. Empty fields match everything;
// Search is a case-insensitive substring of the product name.
type ProductFilter struct {
	Search   string
	Category string
}

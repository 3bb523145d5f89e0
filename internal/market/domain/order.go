package domain

import "time"

// CartItemStatus tracks one line of an order through fulfilment. Each line
// belongs to a single shop and moves independently of the others.
type CartItemStatus string

const (
	StatusNotProcessed CartItemStatus = "Not processed"
	StatusProcessing   CartItemStatus = "Processing"
	StatusShipped      CartItemStatus = "Shipped"
	StatusDelivered    CartItemStatus = "Delivered"
	StatusCancelled    CartItemStatus = "Cancelled"
)

// CartItemStatuses lists every status in fulfilment order.
var CartItemStatuses = []CartItemStatus{
	StatusNotProcessed,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

func (s CartItemStatus) Valid() bool {
	for _, known := range CartItemStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type Address struct {
	Street  string
	City    string
	State   string
	Zipcode string
	Country string
}

// CartItem keeps a snapshot of the product name and price at order time so
// later catalogue edits do not rewrite order history.
type CartItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ShopID      string
	ProductName string
	Price       int64
	Quantity    int
	Status      CartItemStatus
}

type Order struct {
	ID            string
	AccountID     string
	CustomerName  string
	CustomerEmail string
	Address       Address
	Items         []CartItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

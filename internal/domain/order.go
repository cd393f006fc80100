package domain

import "github.com/shopspring/decimal"

// Customer is the shopper identity attached to an order, when known.
type Customer struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// ShippingAddress is the destination of an order.
type ShippingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

// Order is the payload submitted to the external order API.
type Order struct {
	UserID          string          `json:"userId,omitempty"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	CustomerPhone   string          `json:"customerPhone"`
	Items           []CartItem      `json:"items"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	Instructions    string          `json:"instructions"`
}

// PlacedOrder is what the order API returns after creation.
type PlacedOrder struct {
	OrderID string `json:"order_id,omitempty"`
	Status  string `json:"status,omitempty"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest is one line of a new order.
type OrderLineRequest struct {
	ListingID     int64  `json:"listing_id"`
	Quantity      int64  `json:"quantity"`
	NegotiationID *int64 `json:"negotiation_id,omitempty"`
}

// CreateOrderRequest describes the buyer's cart.
type CreateOrderRequest struct {
	Lines           []OrderLineRequest `json:"lines"`
	ShippingAddress string             `json:"shipping_address"`
}

// UpdateOrderRequest carries any subset of the mutable order fields.
type UpdateOrderRequest struct {
	Status          *string `json:"status"`
	PaymentStatus   *string `json:"payment_status"`
	ShippingAddress *string `json:"shipping_address"`
}

// OrderLineResponse describes a priced order line.
type OrderLineResponse struct {
	ListingID     int64           `json:"listing_id"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	NegotiationID *int64          `json:"negotiation_id,omitempty"`
}

// OrderResponse describes order state returned to clients.
type OrderResponse struct {
	ID              int64               `json:"id"`
	BuyerID         int64               `json:"buyer_id"`
	FarmerID        int64               `json:"farmer_id"`
	Lines           []OrderLineResponse `json:"lines"`
	Total           decimal.Decimal     `json:"total"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"payment_status"`
	ShippingAddress string              `json:"shipping_address"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

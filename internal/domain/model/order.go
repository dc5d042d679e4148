package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes fulfilment lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s is delivered or cancelled.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo reports whether next directly follows s in the lifecycle.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentStatus mirrors the state reported by the payment provider.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// OrderLine snapshots the unit price at the time of ordering.
type OrderLine struct {
	ListingID     int64
	Quantity      int64
	UnitPrice     decimal.Decimal
	NegotiationID *int64
}

// Subtotal is Quantity × UnitPrice.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// Order is owned jointly by one buyer and one farmer.
type Order struct {
	ID              int64
	BuyerID         int64
	FarmerID        int64
	Lines           []OrderLine
	Total           decimal.Decimal
	Status          OrderStatus
	PaymentStatus   PaymentStatus
	ShippingAddress string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderTotal sums line subtotals.
func OrderTotal(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// HasListing reports whether any line references listingID.
func (o *Order) HasListing(listingID int64) bool {
	for _, l := range o.Lines {
		if l.ListingID == listingID {
			return true
		}
	}
	return false
}

// OrderFilter narrows order listings. Zero values are ignored.
type OrderFilter struct {
	BuyerID  int64
	FarmerID int64
	Status   OrderStatus
}

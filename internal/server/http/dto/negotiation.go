package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OfferRequest proposes a price. Farmers name the buyer they counter.
type OfferRequest struct {
	Price   *decimal.Decimal `json:"price" binding:"required"`
	BuyerID int64            `json:"buyer_id"`
}

// OfferResponse is one entry of the negotiation log.
type OfferResponse struct {
	AuthorID   int64           `json:"author_id"`
	AuthorRole string          `json:"author_role"`
	Price      decimal.Decimal `json:"price"`
	Kind       string          `json:"kind"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NegotiationResponse describes a negotiation session.
type NegotiationResponse struct {
	ID                   int64            `json:"id"`
	ListingID            int64            `json:"listing_id"`
	BuyerID              int64            `json:"buyer_id"`
	FarmerID             int64            `json:"farmer_id"`
	Status               string           `json:"status"`
	Offers               []OfferResponse  `json:"offers"`
	AgreedPrice          *decimal.Decimal `json:"agreed_price,omitempty"`
	ListingPriceAtAccept *decimal.Decimal `json:"listing_price_at_accept,omitempty"`
	ConsumedByOrder      *int64           `json:"consumed_by_order,omitempty"`
	Version              int              `json:"version"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

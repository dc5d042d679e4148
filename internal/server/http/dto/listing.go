package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateListingRequest publishes a new listing.
type CreateListingRequest struct {
	Title      string          `json:"title" binding:"required"`
	Unit       string          `json:"unit" binding:"required"`
	Price      decimal.Decimal `json:"price"`
	Available  int64           `json:"available"`
	Negotiable bool            `json:"negotiable"`
	Status     string          `json:"status"`
}

// UpdateListingRequest edits a listing; absent fields stay unchanged.
type UpdateListingRequest struct {
	Title      *string          `json:"title"`
	Unit       *string          `json:"unit"`
	Price      *decimal.Decimal `json:"price"`
	Available  *int64           `json:"available"`
	Negotiable *bool            `json:"negotiable"`
	Status     *string          `json:"status"`
}

// ListingResponse describes a listing.
type ListingResponse struct {
	ID         int64           `json:"id"`
	FarmerID   int64           `json:"farmer_id"`
	Title      string          `json:"title"`
	Unit       string          `json:"unit"`
	Price      decimal.Decimal `json:"price"`
	Available  int64           `json:"available"`
	Negotiable bool            `json:"negotiable"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

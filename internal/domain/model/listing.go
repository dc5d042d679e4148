package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListingStatus describes whether a listing can be ordered.
type ListingStatus string

const (
	ListingStatusActive  ListingStatus = "active"
	ListingStatusHidden  ListingStatus = "hidden"
	ListingStatusSoldOut ListingStatus = "sold_out"
)

func (s ListingStatus) Valid() bool {
	switch s {
	case ListingStatusActive, ListingStatusHidden, ListingStatusSoldOut:
		return true
	}
	return false
}

// PriceScale is the number of decimal places money is stored with.
const PriceScale = 2

// ValidPrice reports whether p is positive and has at most PriceScale
// decimal places.
func ValidPrice(p decimal.Decimal) bool {
	return p.IsPositive() && p.Equal(p.Round(PriceScale))
}

// Listing is a farmer's published product.
type Listing struct {
	ID         int64
	FarmerID   int64
	Title      string
	Unit       string
	Price      decimal.Decimal
	Available  int64
	Negotiable bool
	Status     ListingStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ListingPatch carries the optional fields of a listing edit.
type ListingPatch struct {
	Title      *string
	Unit       *string
	Price      *decimal.Decimal
	Available  *int64
	Negotiable *bool
	Status     *ListingStatus
}

// Apply copies the set fields onto l.
func (p ListingPatch) Apply(l *Listing) {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Unit != nil {
		l.Unit = *p.Unit
	}
	if p.Price != nil {
		l.Price = *p.Price
	}
	if p.Available != nil {
		l.Available = *p.Available
	}
	if p.Negotiable != nil {
		l.Negotiable = *p.Negotiable
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
}

// Reservation asks the catalog to hold Quantity units of a listing at the
// price the order was quoted.
type Reservation struct {
	ListingID     int64
	Quantity      int64
	ExpectedPrice decimal.Decimal
}

package repository

import (
	"context"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
)

// ListingRepository is the catalog ledger: price, negotiability and stock.
type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) (*model.Listing, error)
	GetByID(ctx context.Context, id int64) (*model.Listing, error)
	Update(ctx context.Context, id int64, patch model.ListingPatch) (*model.Listing, error)

	// Reserve atomically decrements stock if at least r.Quantity units are
	// available and the price still equals r.ExpectedPrice. It fails with
	// ErrInsufficientStock or ErrConflict without touching the row otherwise.
	Reserve(ctx context.Context, r model.Reservation) error
	// Release returns previously reserved units to stock.
	Release(ctx context.Context, listingID, quantity int64) error
}

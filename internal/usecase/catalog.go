package usecase

import (
	"context"
	"fmt"
	"strings"

	domainErrors "github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/errors"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/policy"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/repository"
)

// CatalogUseCase manages farmer listings.
type CatalogUseCase struct {
	listings repository.ListingRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(listings repository.ListingRepository) *CatalogUseCase {
	return &CatalogUseCase{listings: listings}
}

// Create publishes a listing owned by the calling farmer.
func (u *CatalogUseCase) Create(ctx context.Context, actor policy.Actor, listing model.Listing) (*model.Listing, error) {
	if !policy.CanPerform(actor, policy.CreateListing, policy.Resource{}) {
		return nil, domainErrors.ErrForbidden
	}

	listing.Title = strings.TrimSpace(listing.Title)
	listing.Unit = strings.TrimSpace(listing.Unit)
	if listing.Title == "" || listing.Unit == "" {
		return nil, fmt.Errorf("title and unit are required: %w", domainErrors.ErrInvalidInput)
	}
	if !model.ValidPrice(listing.Price) {
		return nil, fmt.Errorf("price must be positive with at most %d decimals: %w", model.PriceScale, domainErrors.ErrInvalidInput)
	}
	if listing.Available < 0 {
		return nil, fmt.Errorf("available quantity must not be negative: %w", domainErrors.ErrInvalidInput)
	}
	if listing.Status == "" {
		listing.Status = model.ListingStatusActive
	}
	if !listing.Status.Valid() {
		return nil, fmt.Errorf("unknown listing status %q: %w", listing.Status, domainErrors.ErrInvalidInput)
	}

	listing.ID = 0
	listing.FarmerID = actor.ID
	return u.listings.Create(ctx, &listing)
}

// Get returns a listing by identifier.
func (u *CatalogUseCase) Get(ctx context.Context, id int64) (*model.Listing, error) {
	return u.listings.GetByID(ctx, id)
}

// Update edits a listing on behalf of its owner or an admin.
func (u *CatalogUseCase) Update(ctx context.Context, actor policy.Actor, id int64, patch model.ListingPatch) (*model.Listing, error) {
	listing, err := u.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanPerform(actor, policy.ManageListing, policy.Resource{OwnerID: listing.FarmerID}) {
		return nil, domainErrors.ErrForbidden
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("title must not be blank: %w", domainErrors.ErrInvalidInput)
		}
		patch.Title = &title
	}
	if patch.Unit != nil {
		unit := strings.TrimSpace(*patch.Unit)
		if unit == "" {
			return nil, fmt.Errorf("unit must not be blank: %w", domainErrors.ErrInvalidInput)
		}
		patch.Unit = &unit
	}
	if patch.Price != nil && !model.ValidPrice(*patch.Price) {
		return nil, fmt.Errorf("price must be positive with at most %d decimals: %w", model.PriceScale, domainErrors.ErrInvalidInput)
	}
	if patch.Available != nil && *patch.Available < 0 {
		return nil, fmt.Errorf("available quantity must not be negative: %w", domainErrors.ErrInvalidInput)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, fmt.Errorf("unknown listing status %q: %w", *patch.Status, domainErrors.ErrInvalidInput)
	}

	return u.listings.Update(ctx, id, patch)
}

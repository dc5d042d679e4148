package memory

import (
	"context"

	domainErrors "github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/errors"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
)

type listingRepository struct{ store *Store }

func (r *listingRepository) Create(ctx context.Context, listing *model.Listing) (*model.Listing, error) {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)

	l := *listing
	l.ID = r.store.id("listing")
	l.CreatedAt = r.store.now()
	l.UpdatedAt = l.CreatedAt
	r.store.state.listings[l.ID] = l
	return &l, nil
}

func (r *listingRepository) GetByID(ctx context.Context, id int64) (*model.Listing, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)

	l, ok := r.store.state.listings[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &l, nil
}

func (r *listingRepository) Update(ctx context.Context, id int64, patch model.ListingPatch) (*model.Listing, error) {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)

	l, ok := r.store.state.listings[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	patch.Apply(&l)
	l.UpdatedAt = r.store.now()
	r.store.state.listings[id] = l
	return &l, nil
}

func (r *listingRepository) Reserve(ctx context.Context, res model.Reservation) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)

	l, ok := r.store.state.listings[res.ListingID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if l.Status == model.ListingStatusHidden {
		return domainErrors.ErrInvalidLineItem
	}
	if !l.Price.Equal(res.ExpectedPrice) {
		return domainErrors.ErrConflict
	}
	if l.Available < res.Quantity {
		return domainErrors.ErrInsufficientStock
	}

	l.Available -= res.Quantity
	if l.Available == 0 {
		l.Status = model.ListingStatusSoldOut
	}
	l.UpdatedAt = r.store.now()
	r.store.state.listings[l.ID] = l
	return nil
}

func (r *listingRepository) Release(ctx context.Context, listingID, quantity int64) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)

	l, ok := r.store.state.listings[listingID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	l.Available += quantity
	if l.Status == model.ListingStatusSoldOut && l.Available > 0 {
		l.Status = model.ListingStatusActive
	}
	l.UpdatedAt = r.store.now()
	r.store.state.listings[l.ID] = l
	return nil
}

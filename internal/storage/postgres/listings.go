package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/errors"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
)

const listingColumns = `id, farmer_id, title, unit, price::text, available, negotiable, status, created_at, updated_at`

func (r *listingRepository) Create(ctx context.Context, listing *model.Listing) (*model.Listing, error) {
	const query = `INSERT INTO listings (farmer_id, title, unit, price, available, negotiable, status)
                   VALUES ($1, $2, $3, $4::text::numeric, $5, $6, $7)
                   RETURNING ` + listingColumns
	return scanListing(r.storage.conn(ctx).QueryRow(ctx, query,
		listing.FarmerID, listing.Title, listing.Unit, listing.Price.String(),
		listing.Available, listing.Negotiable, string(listing.Status),
	))
}

func (r *listingRepository) GetByID(ctx context.Context, id int64) (*model.Listing, error) {
	const query = `SELECT ` + listingColumns + ` FROM listings WHERE id=$1`
	return scanListing(r.storage.conn(ctx).QueryRow(ctx, query, id))
}

func (r *listingRepository) Update(ctx context.Context, id int64, patch model.ListingPatch) (*model.Listing, error) {
	const query = `UPDATE listings SET
                       title = COALESCE($2, title),
                       unit = COALESCE($3, unit),
                       price = COALESCE($4::text::numeric, price),
                       available = COALESCE($5, available),
                       negotiable = COALESCE($6, negotiable),
                       status = COALESCE($7, status),
                       updated_at = NOW()
                   WHERE id=$1
                   RETURNING ` + listingColumns

	var price, status *string
	if patch.Price != nil {
		v := patch.Price.String()
		price = &v
	}
	if patch.Status != nil {
		v := string(*patch.Status)
		status = &v
	}
	return scanListing(r.storage.conn(ctx).QueryRow(ctx, query,
		id, patch.Title, patch.Unit, price, patch.Available, patch.Negotiable, status,
	))
}

func (r *listingRepository) Reserve(ctx context.Context, res model.Reservation) error {
	const reserve = `UPDATE listings
                     SET available = available - $2,
                         status = CASE WHEN available - $2 = 0 THEN 'sold_out' ELSE status END,
                         updated_at = NOW()
                     WHERE id=$1 AND available >= $2 AND price = $3::text::numeric AND status <> 'hidden'`
	q := r.storage.conn(ctx)
	tag, err := q.Exec(ctx, reserve, res.ListingID, res.Quantity, res.ExpectedPrice.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	// Nothing changed: report why.
	current, err := r.GetByID(ctx, res.ListingID)
	if err != nil {
		return err
	}
	switch {
	case current.Status == model.ListingStatusHidden:
		return domainErrors.ErrInvalidLineItem
	case !current.Price.Equal(res.ExpectedPrice):
		return domainErrors.ErrConflict
	default:
		return domainErrors.ErrInsufficientStock
	}
}

func (r *listingRepository) Release(ctx context.Context, listingID, quantity int64) error {
	const release = `UPDATE listings
                     SET available = available + $2,
                         status = CASE WHEN status = 'sold_out' THEN 'active' ELSE status END,
                         updated_at = NOW()
                     WHERE id=$1`
	tag, err := r.storage.conn(ctx).Exec(ctx, release, listingID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func scanListing(row pgx.Row) (*model.Listing, error) {
	var (
		l      model.Listing
		price  string
		status string
	)
	err := row.Scan(&l.ID, &l.FarmerID, &l.Title, &l.Unit, &price, &l.Available, &l.Negotiable, &status, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if l.Price, err = parseDecimal(price); err != nil {
		return nil, err
	}
	l.Status = model.ListingStatus(status)
	return &l, nil
}

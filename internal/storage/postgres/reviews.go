package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/errors"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
)

const reviewColumns = `id, order_id, listing_id, reviewer_id, target_id, rating, comment, reply, replied_at, created_at`

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) (*model.Review, error) {
	const query = `INSERT INTO reviews (order_id, listing_id, reviewer_id, target_id, rating, comment)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, created_at`
	created := *review
	err := r.storage.conn(ctx).QueryRow(ctx, query,
		review.OrderID, review.ListingID, review.ReviewerID, review.TargetID, review.Rating, review.Comment,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrDuplicateReview
		}
		return nil, err
	}
	return &created, nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	return scanReview(r.storage.conn(ctx).QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id=$1`, id))
}

func (r *reviewRepository) ListByTarget(ctx context.Context, farmerID int64) ([]model.Review, error) {
	const query = `SELECT ` + reviewColumns + ` FROM reviews WHERE target_id=$1 ORDER BY created_at DESC, id DESC`
	rows, err := r.storage.conn(ctx).Query(ctx, query, farmerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *reviewRepository) SetReply(ctx context.Context, id int64, reply string) (*model.Review, error) {
	const query = `UPDATE reviews SET reply=$2, replied_at=NOW()
                   WHERE id=$1 AND reply IS NULL
                   RETURNING ` + reviewColumns
	rv, err := scanReview(r.storage.conn(ctx).QueryRow(ctx, query, id, reply))
	if errors.Is(err, domainErrors.ErrNotFound) {
		if _, lookupErr := r.GetByID(ctx, id); lookupErr != nil {
			return nil, lookupErr
		}
		return nil, domainErrors.ErrAlreadyReplied
	}
	return rv, err
}

func scanReview(row pgx.Row) (*model.Review, error) {
	var rv model.Review
	err := row.Scan(&rv.ID, &rv.OrderID, &rv.ListingID, &rv.ReviewerID, &rv.TargetID, &rv.Rating, &rv.Comment, &rv.Reply, &rv.RepliedAt, &rv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &rv, nil
}

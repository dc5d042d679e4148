package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/errors"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
)

const sessionColumns = `id, listing_id, buyer_id, farmer_id, status, agreed_price::text,
                        listing_price_at_accept::text, consumed_by_order, version, created_at, updated_at`

func (r *negotiationRepository) Create(ctx context.Context, session *model.NegotiationSession) (*model.NegotiationSession, error) {
	const insertSession = `INSERT INTO negotiation_sessions (listing_id, buyer_id, farmer_id, status)
                           VALUES ($1, $2, $3, $4)
                           RETURNING id`

	var created *model.NegotiationSession
	err := r.storage.atomically(ctx, func(q querier) error {
		var id int64
		err := q.QueryRow(ctx, insertSession, session.ListingID, session.BuyerID, session.FarmerID, string(session.Status)).Scan(&id)
		if err != nil {
			if isUniqueViolation(err) {
				return domainErrors.ErrConflict
			}
			return err
		}
		for _, offer := range session.Offers {
			if err := insertOffer(ctx, q, id, offer); err != nil {
				return err
			}
		}
		created, err = loadSession(ctx, q, `SELECT `+sessionColumns+` FROM negotiation_sessions WHERE id=$1`, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *negotiationRepository) GetByID(ctx context.Context, id int64) (*model.NegotiationSession, error) {
	return loadSession(ctx, r.storage.conn(ctx), `SELECT `+sessionColumns+` FROM negotiation_sessions WHERE id=$1`, id)
}

func (r *negotiationRepository) FindByListingAndBuyer(ctx context.Context, listingID, buyerID int64) (*model.NegotiationSession, error) {
	return loadSession(ctx, r.storage.conn(ctx),
		`SELECT `+sessionColumns+` FROM negotiation_sessions WHERE listing_id=$1 AND buyer_id=$2`, listingID, buyerID)
}

func (r *negotiationRepository) Append(ctx context.Context, id int64, expectedVersion int, update model.SessionUpdate) (*model.NegotiationSession, error) {
	const cas = `UPDATE negotiation_sessions
                 SET status = $3,
                     agreed_price = COALESCE($4::text::numeric, agreed_price),
                     listing_price_at_accept = COALESCE($5::text::numeric, listing_price_at_accept),
                     version = version + 1,
                     updated_at = NOW()
                 WHERE id=$1 AND version=$2 AND status='ongoing'`

	var updated *model.NegotiationSession
	err := r.storage.atomically(ctx, func(q querier) error {
		tag, err := q.Exec(ctx, cas, id, expectedVersion, string(update.Status),
			nullDecimalArg(update.AgreedPrice), nullDecimalArg(update.ListingPriceAtAccept))
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrConflict
		}
		if err := insertOffer(ctx, q, id, update.Entry); err != nil {
			return err
		}
		updated, err = loadSession(ctx, q, `SELECT `+sessionColumns+` FROM negotiation_sessions WHERE id=$1`, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *negotiationRepository) MarkConsumed(ctx context.Context, id, orderID int64) error {
	const consume = `UPDATE negotiation_sessions
                     SET consumed_by_order=$2, version = version + 1, updated_at = NOW()
                     WHERE id=$1 AND status='accepted' AND consumed_by_order IS NULL`
	tag, err := r.storage.conn(ctx).Exec(ctx, consume, id, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrSessionClosed
	}
	return nil
}

func insertOffer(ctx context.Context, q querier, sessionID int64, offer model.Offer) error {
	const query = `INSERT INTO negotiation_offers (session_id, author_id, author_role, price, kind)
                   VALUES ($1, $2, $3, $4::text::numeric, $5)`
	_, err := q.Exec(ctx, query, sessionID, offer.AuthorID, string(offer.AuthorRole), offer.Price.String(), string(offer.Kind))
	return err
}

func loadSession(ctx context.Context, q querier, query string, args ...any) (*model.NegotiationSession, error) {
	var (
		s                   model.NegotiationSession
		status              string
		agreed, listingSnap *string
	)
	err := q.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.ListingID, &s.BuyerID, &s.FarmerID, &status, &agreed,
		&listingSnap, &s.ConsumedByOrder, &s.Version, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	s.Status = model.NegotiationStatus(status)
	if s.AgreedPrice, err = parseNullDecimal(agreed); err != nil {
		return nil, err
	}
	if s.ListingPriceAtAccept, err = parseNullDecimal(listingSnap); err != nil {
		return nil, err
	}

	const offersQuery = `SELECT author_id, author_role, price::text, kind, created_at
                         FROM negotiation_offers WHERE session_id=$1 ORDER BY id`
	rows, err := q.Query(ctx, offersQuery, s.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			o          model.Offer
			role, kind string
			price      string
		)
		if err := rows.Scan(&o.AuthorID, &role, &price, &kind, &o.CreatedAt); err != nil {
			return nil, err
		}
		if o.Price, err = parseDecimal(price); err != nil {
			return nil, err
		}
		o.AuthorRole = model.Role(role)
		o.Kind = model.OfferKind(kind)
		s.Offers = append(s.Offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}

package memory

import (
	"context"

	domainErrors "github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/errors"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
)

type negotiationRepository struct{ store *Store }

func (r *negotiationRepository) Create(ctx context.Context, session *model.NegotiationSession) (*model.NegotiationSession, error) {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)

	key := sessionKey{listingID: session.ListingID, buyerID: session.BuyerID}
	if _, exists := r.store.state.sessionByKey[key]; exists {
		return nil, domainErrors.ErrConflict
	}

	s := *session
	s.ID = r.store.id("session")
	s.CreatedAt = r.store.now()
	s.UpdatedAt = s.CreatedAt
	s.Version = 1
	s.Offers = append([]model.Offer(nil), session.Offers...)
	for i := range s.Offers {
		if s.Offers[i].CreatedAt.IsZero() {
			s.Offers[i].CreatedAt = s.CreatedAt
		}
	}
	r.store.state.sessions[s.ID] = s
	r.store.state.sessionByKey[key] = s.ID
	return cloneSession(s), nil
}

func (r *negotiationRepository) GetByID(ctx context.Context, id int64) (*model.NegotiationSession, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)

	s, ok := r.store.state.sessions[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return cloneSession(s), nil
}

func (r *negotiationRepository) FindByListingAndBuyer(ctx context.Context, listingID, buyerID int64) (*model.NegotiationSession, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)

	id, ok := r.store.state.sessionByKey[sessionKey{listingID: listingID, buyerID: buyerID}]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return cloneSession(r.store.state.sessions[id]), nil
}

func (r *negotiationRepository) Append(ctx context.Context, id int64, expectedVersion int, update model.SessionUpdate) (*model.NegotiationSession, error) {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)

	s, ok := r.store.state.sessions[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if s.Version != expectedVersion || s.Status != model.NegotiationOngoing {
		return nil, domainErrors.ErrConflict
	}

	now := r.store.now()
	entry := update.Entry
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	offers := make([]model.Offer, 0, len(s.Offers)+1)
	offers = append(offers, s.Offers...)
	s.Offers = append(offers, entry)
	s.Status = update.Status
	if update.AgreedPrice != nil {
		s.AgreedPrice = update.AgreedPrice
	}
	if update.ListingPriceAtAccept != nil {
		s.ListingPriceAtAccept = update.ListingPriceAtAccept
	}
	s.Version++
	s.UpdatedAt = now
	r.store.state.sessions[id] = s
	return cloneSession(s), nil
}

func (r *negotiationRepository) MarkConsumed(ctx context.Context, id, orderID int64) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)

	s, ok := r.store.state.sessions[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if s.Status != model.NegotiationAccepted || s.ConsumedByOrder != nil {
		return domainErrors.ErrSessionClosed
	}
	consumed := orderID
	s.ConsumedByOrder = &consumed
	s.Version++
	s.UpdatedAt = r.store.now()
	r.store.state.sessions[id] = s
	return nil
}

func cloneSession(s model.NegotiationSession) *model.NegotiationSession {
	s.Offers = append([]model.Offer(nil), s.Offers...)
	return &s
}

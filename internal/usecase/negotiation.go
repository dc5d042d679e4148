package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	domainErrors "github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/errors"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/policy"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/repository"
)

// NegotiationUseCase runs the offer / counter-offer protocol between a buyer
// and the farmer of a negotiable listing.
type NegotiationUseCase struct {
	listings repository.ListingRepository
	sessions repository.NegotiationRepository
	events   EventPublisher
	logger   *slog.Logger
}

// NewNegotiationUseCase constructs NegotiationUseCase.
func NewNegotiationUseCase(
	listings repository.ListingRepository,
	sessions repository.NegotiationRepository,
	events EventPublisher,
	logger *slog.Logger,
) *NegotiationUseCase {
	return &NegotiationUseCase{listings: listings, sessions: sessions, events: events, logger: logger}
}

// SubmitOffer appends a proposal to the session between buyerID and the
// listing's farmer, opening the session on the buyer's first offer. Buyers
// always act on their own session; farmers must name the buyer they counter.
func (u *NegotiationUseCase) SubmitOffer(ctx context.Context, actor policy.Actor, listingID int64, price decimal.Decimal, buyerID int64) (*model.NegotiationSession, error) {
	listing, err := u.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case model.RoleBuyer:
		if buyerID != 0 && buyerID != actor.ID {
			return nil, domainErrors.ErrForbidden
		}
		buyerID = actor.ID
	case model.RoleFarmer:
		if buyerID == 0 && listing.FarmerID == actor.ID {
			return nil, fmt.Errorf("buyer_id is required for counter-offers: %w", domainErrors.ErrInvalidInput)
		}
	}
	if !policy.CanPerform(actor, policy.SubmitOffer, policy.Resource{BuyerID: buyerID, FarmerID: listing.FarmerID}) {
		return nil, domainErrors.ErrForbidden
	}

	if !listing.Negotiable || listing.Status == model.ListingStatusHidden {
		return nil, domainErrors.ErrNotNegotiable
	}
	if !model.ValidPrice(price) {
		return nil, fmt.Errorf("offer price must be positive with at most %d decimals: %w", model.PriceScale, domainErrors.ErrInvalidInput)
	}
	if price.GreaterThan(listing.Price) {
		return nil, domainErrors.ErrPriceExceedsListing
	}

	entry := model.Offer{AuthorID: actor.ID, AuthorRole: actor.Role, Price: price}

	session, err := u.sessions.FindByListingAndBuyer(ctx, listing.ID, buyerID)
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		if actor.Role != model.RoleBuyer {
			return nil, err
		}
		session, err = u.open(ctx, listing, buyerID, entry)
		if err == nil {
			u.notify(session, actor, model.EventNegotiationOffer, price)
			return session, nil
		}
		if !errors.Is(err, domainErrors.ErrConflict) {
			return nil, err
		}
		// Another request opened the session first; continue it.
		if session, err = u.sessions.FindByListingAndBuyer(ctx, listing.ID, buyerID); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	if session.Status.Terminal() {
		return nil, domainErrors.ErrSessionClosed
	}

	entry.Kind = session.NextOfferKind()
	updated, err := u.sessions.Append(ctx, session.ID, session.Version, model.SessionUpdate{
		Status: model.NegotiationOngoing,
		Entry:  entry,
	})
	if err != nil {
		return nil, err
	}

	u.notify(updated, actor, model.EventNegotiationOffer, price)
	return updated, nil
}

// Accept closes the session at its current offer. The agreed price becomes
// usable for a single order while the listing price stays unchanged. Only
// the counterparty of the current offer, or an admin, may accept it.
func (u *NegotiationUseCase) Accept(ctx context.Context, actor policy.Actor, sessionID int64) (*model.NegotiationSession, error) {
	session, err := u.respondable(ctx, actor, sessionID)
	if err != nil {
		return nil, err
	}

	listing, err := u.listings.GetByID(ctx, session.ListingID)
	if err != nil {
		return nil, err
	}
	proposal, ok := session.CurrentProposal()
	if !ok {
		return nil, domainErrors.ErrSessionClosed
	}
	if proposal.AuthorID == actor.ID {
		return nil, fmt.Errorf("cannot accept own offer: %w", domainErrors.ErrForbidden)
	}
	current := proposal.Price
	if current.GreaterThan(listing.Price) {
		return nil, domainErrors.ErrPriceExceedsListing
	}

	listingPrice := listing.Price
	updated, err := u.sessions.Append(ctx, session.ID, session.Version, model.SessionUpdate{
		Status:               model.NegotiationAccepted,
		Entry:                model.Offer{AuthorID: actor.ID, AuthorRole: actor.Role, Price: current, Kind: model.OfferKindAccept},
		AgreedPrice:          &current,
		ListingPriceAtAccept: &listingPrice,
	})
	if err != nil {
		return nil, err
	}

	u.notify(updated, actor, model.EventNegotiationAccepted, current)
	return updated, nil
}

// Reject closes the session without an agreed price.
func (u *NegotiationUseCase) Reject(ctx context.Context, actor policy.Actor, sessionID int64) (*model.NegotiationSession, error) {
	session, err := u.respondable(ctx, actor, sessionID)
	if err != nil {
		return nil, err
	}

	current, _ := session.CurrentOffer()
	updated, err := u.sessions.Append(ctx, session.ID, session.Version, model.SessionUpdate{
		Status: model.NegotiationRejected,
		Entry:  model.Offer{AuthorID: actor.ID, AuthorRole: actor.Role, Price: current, Kind: model.OfferKindReject},
	})
	if err != nil {
		return nil, err
	}

	u.notify(updated, actor, model.EventNegotiationRejected, current)
	return updated, nil
}

// Get returns a session visible to its parties and admins.
func (u *NegotiationUseCase) Get(ctx context.Context, actor policy.Actor, sessionID int64) (*model.NegotiationSession, error) {
	session, err := u.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !policy.CanPerform(actor, policy.ViewNegotiation, policy.SessionResource(session)) {
		return nil, domainErrors.ErrForbidden
	}
	return session, nil
}

func (u *NegotiationUseCase) open(ctx context.Context, listing *model.Listing, buyerID int64, entry model.Offer) (*model.NegotiationSession, error) {
	entry.Kind = model.OfferKindOffer
	return u.sessions.Create(ctx, &model.NegotiationSession{
		ListingID: listing.ID,
		BuyerID:   buyerID,
		FarmerID:  listing.FarmerID,
		Status:    model.NegotiationOngoing,
		Offers:    []model.Offer{entry},
	})
}

func (u *NegotiationUseCase) respondable(ctx context.Context, actor policy.Actor, sessionID int64) (*model.NegotiationSession, error) {
	session, err := u.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !policy.CanPerform(actor, policy.RespondToOffer, policy.SessionResource(session)) {
		return nil, domainErrors.ErrForbidden
	}
	if session.Status.Terminal() {
		return nil, domainErrors.ErrSessionClosed
	}
	return session, nil
}

func (u *NegotiationUseCase) notify(s *model.NegotiationSession, actor policy.Actor, kind model.EventType, price decimal.Decimal) {
	u.logger.Debug("negotiation updated",
		slog.Int64("session_id", s.ID),
		slog.String("status", string(s.Status)),
		slog.String("price", price.String()),
	)
	u.events.Publish(newEvent(kind, actor.ID, s.ID, map[string]any{
		"listing_id": s.ListingID,
		"buyer_id":   s.BuyerID,
		"farmer_id":  s.FarmerID,
		"status":     string(s.Status),
		"price":      price.String(),
	}))
}

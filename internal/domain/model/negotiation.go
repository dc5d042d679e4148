package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// NegotiationStatus is the state of a negotiation session.
type NegotiationStatus string

const (
	NegotiationOngoing  NegotiationStatus = "ongoing"
	NegotiationAccepted NegotiationStatus = "accepted"
	NegotiationRejected NegotiationStatus = "rejected"
)

// Terminal reports whether no further offers may be appended.
func (s NegotiationStatus) Terminal() bool {
	return s == NegotiationAccepted || s == NegotiationRejected
}

// OfferKind discriminates entries of the negotiation log.
type OfferKind string

const (
	OfferKindOffer   OfferKind = "offer"
	OfferKindCounter OfferKind = "counter_offer"
	OfferKindAccept  OfferKind = "accept"
	OfferKindReject  OfferKind = "reject"
)

// Offer is a single entry in the append-only negotiation log.
type Offer struct {
	AuthorID   int64
	AuthorRole Role
	Price      decimal.Decimal
	Kind       OfferKind
	CreatedAt  time.Time
}

// NegotiationSession is keyed by (listing, buyer).
type NegotiationSession struct {
	ID        int64
	ListingID int64
	BuyerID   int64
	FarmerID  int64
	Status    NegotiationStatus
	Offers    []Offer

	// Set on acceptance.
	AgreedPrice          *decimal.Decimal
	ListingPriceAtAccept *decimal.Decimal
	// Set once an order has used the agreed price.
	ConsumedByOrder *int64

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CurrentOffer returns the price of the most recent offer or counter-offer.
func (s *NegotiationSession) CurrentOffer() (decimal.Decimal, bool) {
	p, ok := s.CurrentProposal()
	return p.Price, ok
}

// CurrentProposal returns the most recent offer or counter-offer entry.
func (s *NegotiationSession) CurrentProposal() (Offer, bool) {
	for i := len(s.Offers) - 1; i >= 0; i-- {
		switch s.Offers[i].Kind {
		case OfferKindOffer, OfferKindCounter:
			return s.Offers[i], true
		}
	}
	return Offer{}, false
}

// NextOfferKind returns the discriminator for the next proposal in the log.
func (s *NegotiationSession) NextOfferKind() OfferKind {
	if len(s.Offers) == 0 {
		return OfferKindOffer
	}
	return OfferKindCounter
}

// SessionUpdate is the state written back by a compare-and-swap on Version.
type SessionUpdate struct {
	Status               NegotiationStatus
	Entry                Offer
	AgreedPrice          *decimal.Decimal
	ListingPriceAtAccept *decimal.Decimal
}

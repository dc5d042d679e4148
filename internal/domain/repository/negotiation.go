package repository

import (
	"context"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
)

// NegotiationRepository persists negotiation sessions and their offer logs.
type NegotiationRepository interface {
	// Create stores a new session together with its first offer. A second
	// session for the same listing and buyer fails with ErrConflict.
	Create(ctx context.Context, session *model.NegotiationSession) (*model.NegotiationSession, error)
	GetByID(ctx context.Context, id int64) (*model.NegotiationSession, error)
	FindByListingAndBuyer(ctx context.Context, listingID, buyerID int64) (*model.NegotiationSession, error)

	// Append writes update only if the session is still ongoing and its
	// version equals expectedVersion; otherwise it fails with ErrConflict.
	Append(ctx context.Context, id int64, expectedVersion int, update model.SessionUpdate) (*model.NegotiationSession, error)
	// MarkConsumed binds an accepted session to the order that used its
	// price. Already consumed sessions fail with ErrSessionClosed.
	MarkConsumed(ctx context.Context, id, orderID int64) error
}

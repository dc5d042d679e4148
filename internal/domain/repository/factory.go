package repository

import "context"

// Transactor runs fn atomically. Repository calls made with the context
// passed to fn join the same transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Factory describes access to different domain repositories.
type Factory interface {
	Transactor

	Accounts() AccountRepository
	Listings() ListingRepository
	Negotiations() NegotiationRepository
	Orders() OrderRepository
	Reviews() ReviewRepository
	HealthCheck(ctx context.Context) error
}

package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/policy"
	pkgAuth "github.com/AmanKr31/Farm-Bazzar-sub000/internal/pkg/auth"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string, role model.Role) (*model.Account, string, error)
	Authenticate(ctx context.Context, login, password string) (*model.Account, string, error)
	ParseToken(token string) (pkgAuth.Identity, error)
}

// CatalogFacade exposes listing management.
type CatalogFacade interface {
	CreateListing(ctx context.Context, actor policy.Actor, listing model.Listing) (*model.Listing, error)
	Listing(ctx context.Context, id int64) (*model.Listing, error)
	UpdateListing(ctx context.Context, actor policy.Actor, id int64, patch model.ListingPatch) (*model.Listing, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, actor policy.Actor, req usecase.CreateOrderRequest) (*model.Order, error)
	Order(ctx context.Context, actor policy.Actor, id int64) (*model.Order, error)
	Orders(ctx context.Context, actor policy.Actor, status model.OrderStatus) ([]model.Order, error)
	PatchOrder(ctx context.Context, actor policy.Actor, id int64, patch usecase.OrderPatch) (*model.Order, error)
	CancelOrder(ctx context.Context, actor policy.Actor, id int64) (*model.Order, error)
}

// NegotiationFacade drives the offer / counter-offer protocol.
type NegotiationFacade interface {
	SubmitOffer(ctx context.Context, actor policy.Actor, listingID int64, price decimal.Decimal, buyerID int64) (*model.NegotiationSession, error)
	Negotiation(ctx context.Context, actor policy.Actor, id int64) (*model.NegotiationSession, error)
	AcceptOffer(ctx context.Context, actor policy.Actor, id int64) (*model.NegotiationSession, error)
	RejectOffer(ctx context.Context, actor policy.Actor, id int64) (*model.NegotiationSession, error)
}

// ReviewFacade provides review operations.
type ReviewFacade interface {
	CreateReview(ctx context.Context, actor policy.Actor, req usecase.CreateReviewRequest) (*model.Review, error)
	ReplyToReview(ctx context.Context, actor policy.Actor, id int64, text string) (*model.Review, error)
	FarmerReviews(ctx context.Context, farmerID int64) ([]model.Review, error)
}

// HealthFacade reports whether storage is reachable.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// MarketFacade aggregates the full set of operations used across handlers.
type MarketFacade interface {
	AuthFacade
	CatalogFacade
	OrderFacade
	NegotiationFacade
	ReviewFacade
	HealthFacade
}

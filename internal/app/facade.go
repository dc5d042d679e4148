package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/policy"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/repository"
	pkgAuth "github.com/AmanKr31/Farm-Bazzar-sub000/internal/pkg/auth"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/usecase"
)

// MarketFacade exposes the marketplace use cases to the transport layer.
type MarketFacade struct {
	auth         *usecase.AuthUseCase
	catalog      *usecase.CatalogUseCase
	orders       *usecase.OrderUseCase
	negotiations *usecase.NegotiationUseCase
	reviews      *usecase.ReviewUseCase
	storage      repository.Factory
}

func NewMarketFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	orders *usecase.OrderUseCase,
	negotiations *usecase.NegotiationUseCase,
	reviews *usecase.ReviewUseCase,
	storage repository.Factory,
) *MarketFacade {
	return &MarketFacade{
		auth:         auth,
		catalog:      catalog,
		orders:       orders,
		negotiations: negotiations,
		reviews:      reviews,
		storage:      storage,
	}
}

func (f *MarketFacade) Register(ctx context.Context, login, password string, role model.Role) (*model.Account, string, error) {
	return f.auth.Register(ctx, login, password, role)
}

func (f *MarketFacade) Authenticate(ctx context.Context, login, password string) (*model.Account, string, error) {
	return f.auth.Authenticate(ctx, login, password)
}

func (f *MarketFacade) ParseToken(token string) (pkgAuth.Identity, error) {
	return f.auth.ParseToken(token)
}

func (f *MarketFacade) CreateListing(ctx context.Context, actor policy.Actor, listing model.Listing) (*model.Listing, error) {
	return f.catalog.Create(ctx, actor, listing)
}

func (f *MarketFacade) Listing(ctx context.Context, id int64) (*model.Listing, error) {
	return f.catalog.Get(ctx, id)
}

func (f *MarketFacade) UpdateListing(ctx context.Context, actor policy.Actor, id int64, patch model.ListingPatch) (*model.Listing, error) {
	return f.catalog.Update(ctx, actor, id, patch)
}

func (f *MarketFacade) CreateOrder(ctx context.Context, actor policy.Actor, req usecase.CreateOrderRequest) (*model.Order, error) {
	return f.orders.Create(ctx, actor, req)
}

func (f *MarketFacade) Order(ctx context.Context, actor policy.Actor, id int64) (*model.Order, error) {
	return f.orders.Get(ctx, actor, id)
}

func (f *MarketFacade) Orders(ctx context.Context, actor policy.Actor, status model.OrderStatus) ([]model.Order, error) {
	return f.orders.List(ctx, actor, status)
}

func (f *MarketFacade) PatchOrder(ctx context.Context, actor policy.Actor, id int64, patch usecase.OrderPatch) (*model.Order, error) {
	return f.orders.Patch(ctx, actor, id, patch)
}

func (f *MarketFacade) CancelOrder(ctx context.Context, actor policy.Actor, id int64) (*model.Order, error) {
	return f.orders.Cancel(ctx, actor, id)
}

func (f *MarketFacade) SubmitOffer(ctx context.Context, actor policy.Actor, listingID int64, price decimal.Decimal, buyerID int64) (*model.NegotiationSession, error) {
	return f.negotiations.SubmitOffer(ctx, actor, listingID, price, buyerID)
}

func (f *MarketFacade) Negotiation(ctx context.Context, actor policy.Actor, id int64) (*model.NegotiationSession, error) {
	return f.negotiations.Get(ctx, actor, id)
}

func (f *MarketFacade) AcceptOffer(ctx context.Context, actor policy.Actor, id int64) (*model.NegotiationSession, error) {
	return f.negotiations.Accept(ctx, actor, id)
}

func (f *MarketFacade) RejectOffer(ctx context.Context, actor policy.Actor, id int64) (*model.NegotiationSession, error) {
	return f.negotiations.Reject(ctx, actor, id)
}

func (f *MarketFacade) CreateReview(ctx context.Context, actor policy.Actor, req usecase.CreateReviewRequest) (*model.Review, error) {
	return f.reviews.Create(ctx, actor, req)
}

func (f *MarketFacade) ReplyToReview(ctx context.Context, actor policy.Actor, id int64, text string) (*model.Review, error) {
	return f.reviews.Reply(ctx, actor, id, text)
}

func (f *MarketFacade) FarmerReviews(ctx context.Context, farmerID int64) ([]model.Review, error) {
	return f.reviews.ListForFarmer(ctx, farmerID)
}

// Health reports whether the storage backend answers.
func (f *MarketFacade) Health(ctx context.Context) error {
	return f.storage.HealthCheck(ctx)
}

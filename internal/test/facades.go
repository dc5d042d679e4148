package test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/policy"
	pkgAuth "github.com/AmanKr31/Farm-Bazzar-sub000/internal/pkg/auth"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, model.Role) (*model.Account, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.Account, string, error)
	ParseFn        func(string) (pkgAuth.Identity, error)
}

// Register returns an account and token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, login, password string, role model.Role) (*model.Account, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password, role)
	}
	return &model.Account{ID: 1, Login: login, Role: role}, "token", nil
}

// Authenticate returns an account and token for successful login scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (*model.Account, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return &model.Account{ID: 1, Login: login, Role: model.RoleBuyer}, "token", nil
}

// ParseToken returns a buyer identity unless overridden.
func (s AuthFacadeStub) ParseToken(token string) (pkgAuth.Identity, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return pkgAuth.Identity{UserID: 1, Role: model.RoleBuyer}, nil
}

// CatalogFacadeStub provides controllable behaviour for listing endpoints.
type CatalogFacadeStub struct {
	CreateFn func(context.Context, policy.Actor, model.Listing) (*model.Listing, error)
	GetFn    func(context.Context, int64) (*model.Listing, error)
	UpdateFn func(context.Context, policy.Actor, int64, model.ListingPatch) (*model.Listing, error)
}

// CreateListing echoes the listing back with an identifier.
func (s CatalogFacadeStub) CreateListing(ctx context.Context, actor policy.Actor, listing model.Listing) (*model.Listing, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, actor, listing)
	}
	listing.ID = 1
	listing.FarmerID = actor.ID
	return &listing, nil
}

// Listing returns a default active listing.
func (s CatalogFacadeStub) Listing(ctx context.Context, id int64) (*model.Listing, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Listing{ID: id, FarmerID: 10, Title: "Tomatoes", Unit: "kg", Price: decimal.NewFromInt(100), Available: 10, Status: model.ListingStatusActive}, nil
}

// UpdateListing applies patch on top of the default listing.
func (s CatalogFacadeStub) UpdateListing(ctx context.Context, actor policy.Actor, id int64, patch model.ListingPatch) (*model.Listing, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, actor, id, patch)
	}
	l, _ := s.Listing(ctx, id)
	patch.Apply(l)
	return l, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn func(context.Context, policy.Actor, usecase.CreateOrderRequest) (*model.Order, error)
	GetFn    func(context.Context, policy.Actor, int64) (*model.Order, error)
	ListFn   func(context.Context, policy.Actor, model.OrderStatus) ([]model.Order, error)
	PatchFn  func(context.Context, policy.Actor, int64, usecase.OrderPatch) (*model.Order, error)
	CancelFn func(context.Context, policy.Actor, int64) (*model.Order, error)
}

func defaultOrder(id int64) *model.Order {
	lines := []model.OrderLine{{ListingID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(50)}}
	return &model.Order{
		ID:              id,
		BuyerID:         1,
		FarmerID:        10,
		Lines:           lines,
		Total:           model.OrderTotal(lines),
		Status:          model.OrderStatusPending,
		PaymentStatus:   model.PaymentStatusPending,
		ShippingAddress: "1 Farm Road",
	}
}

// CreateOrder delegates to provided function or returns default order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, actor policy.Actor, req usecase.CreateOrderRequest) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, actor, req)
	}
	return defaultOrder(1), nil
}

// Order returns the default order for id.
func (s OrderFacadeStub) Order(ctx context.Context, actor policy.Actor, id int64) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, actor, id)
	}
	return defaultOrder(id), nil
}

// Orders returns predefined orders.
func (s OrderFacadeStub) Orders(ctx context.Context, actor policy.Actor, status model.OrderStatus) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, actor, status)
	}
	return []model.Order{*defaultOrder(1)}, nil
}

// PatchOrder delegates to PatchFn or returns the default order.
func (s OrderFacadeStub) PatchOrder(ctx context.Context, actor policy.Actor, id int64, patch usecase.OrderPatch) (*model.Order, error) {
	if s.PatchFn != nil {
		return s.PatchFn(ctx, actor, id, patch)
	}
	return defaultOrder(id), nil
}

// CancelOrder returns the default order in cancelled state.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, actor policy.Actor, id int64) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, actor, id)
	}
	o := defaultOrder(id)
	o.Status = model.OrderStatusCancelled
	return o, nil
}

// NegotiationFacadeStub simulates negotiation operations.
type NegotiationFacadeStub struct {
	OfferFn  func(context.Context, policy.Actor, int64, decimal.Decimal, int64) (*model.NegotiationSession, error)
	GetFn    func(context.Context, policy.Actor, int64) (*model.NegotiationSession, error)
	AcceptFn func(context.Context, policy.Actor, int64) (*model.NegotiationSession, error)
	RejectFn func(context.Context, policy.Actor, int64) (*model.NegotiationSession, error)
}

func defaultSession(id int64, status model.NegotiationStatus) *model.NegotiationSession {
	return &model.NegotiationSession{
		ID:        id,
		ListingID: 1,
		BuyerID:   1,
		FarmerID:  10,
		Status:    status,
		Offers:    []model.Offer{{AuthorID: 1, AuthorRole: model.RoleBuyer, Price: decimal.NewFromInt(80), Kind: model.OfferKindOffer}},
		Version:   1,
	}
}

// SubmitOffer returns an ongoing session for the listing.
func (s NegotiationFacadeStub) SubmitOffer(ctx context.Context, actor policy.Actor, listingID int64, price decimal.Decimal, buyerID int64) (*model.NegotiationSession, error) {
	if s.OfferFn != nil {
		return s.OfferFn(ctx, actor, listingID, price, buyerID)
	}
	session := defaultSession(1, model.NegotiationOngoing)
	session.ListingID = listingID
	return session, nil
}

// Negotiation returns an ongoing session.
func (s NegotiationFacadeStub) Negotiation(ctx context.Context, actor policy.Actor, id int64) (*model.NegotiationSession, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, actor, id)
	}
	return defaultSession(id, model.NegotiationOngoing), nil
}

// AcceptOffer returns an accepted session.
func (s NegotiationFacadeStub) AcceptOffer(ctx context.Context, actor policy.Actor, id int64) (*model.NegotiationSession, error) {
	if s.AcceptFn != nil {
		return s.AcceptFn(ctx, actor, id)
	}
	return defaultSession(id, model.NegotiationAccepted), nil
}

// RejectOffer returns a rejected session.
func (s NegotiationFacadeStub) RejectOffer(ctx context.Context, actor policy.Actor, id int64) (*model.NegotiationSession, error) {
	if s.RejectFn != nil {
		return s.RejectFn(ctx, actor, id)
	}
	return defaultSession(id, model.NegotiationRejected), nil
}

// ReviewFacadeStub simulates review operations.
type ReviewFacadeStub struct {
	CreateFn func(context.Context, policy.Actor, usecase.CreateReviewRequest) (*model.Review, error)
	ReplyFn  func(context.Context, policy.Actor, int64, string) (*model.Review, error)
	ListFn   func(context.Context, int64) ([]model.Review, error)
}

// CreateReview echoes the request as a stored review.
func (s ReviewFacadeStub) CreateReview(ctx context.Context, actor policy.Actor, req usecase.CreateReviewRequest) (*model.Review, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, actor, req)
	}
	return &model.Review{ID: 1, OrderID: req.OrderID, ListingID: req.ListingID, ReviewerID: actor.ID, TargetID: 10, Rating: req.Rating, Comment: req.Comment}, nil
}

// ReplyToReview returns a replied review.
func (s ReviewFacadeStub) ReplyToReview(ctx context.Context, actor policy.Actor, id int64, text string) (*model.Review, error) {
	if s.ReplyFn != nil {
		return s.ReplyFn(ctx, actor, id, text)
	}
	return &model.Review{ID: id, OrderID: 1, ListingID: 1, ReviewerID: 1, TargetID: actor.ID, Rating: 5, Reply: &text}, nil
}

// FarmerReviews returns a single review for the farmer.
func (s ReviewFacadeStub) FarmerReviews(ctx context.Context, farmerID int64) ([]model.Review, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, farmerID)
	}
	return []model.Review{{ID: 1, OrderID: 1, ListingID: 1, ReviewerID: 1, TargetID: farmerID, Rating: 5}}, nil
}

// HealthFacadeStub reports storage health.
type HealthFacadeStub struct {
	Err error
}

// Health returns the configured error.
func (s HealthFacadeStub) Health(context.Context) error {
	return s.Err
}

// MarketFacadeStub aggregates facade dependencies for HTTP layer tests.
type MarketFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	OrderFacadeStub
	NegotiationFacadeStub
	ReviewFacadeStub
	HealthFacadeStub
}

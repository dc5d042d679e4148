package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/errors"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/policy"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/repository"
	pkgAuth "github.com/AmanKr31/Farm-Bazzar-sub000/internal/pkg/auth"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/storage/memory"
	testhelpers "github.com/AmanKr31/Farm-Bazzar-sub000/internal/test"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/usecase"
)

type unhealthyStore struct {
	repository.Factory
}

func (unhealthyStore) HealthCheck(context.Context) error {
	return errors.New("connection refused")
}

func newFacade(t *testing.T) (*MarketFacade, *testhelpers.EventPublisherStub) {
	t.Helper()
	store := memory.New()
	events := &testhelpers.EventPublisherStub{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	strategy := testhelpers.StrategyStub{ParseFn: func(string) (pkgAuth.Identity, error) {
		return pkgAuth.Identity{UserID: 42, Role: model.RoleFarmer}, nil
	}}

	facade := NewMarketFacade(
		usecase.NewAuthUseCase(store.Accounts(), testhelpers.HasherStub{}, strategy, logger),
		usecase.NewCatalogUseCase(store.Listings()),
		usecase.NewOrderUseCase(store, store.Listings(), store.Negotiations(), store.Orders(), events, logger),
		usecase.NewNegotiationUseCase(store.Listings(), store.Negotiations(), events, logger),
		usecase.NewReviewUseCase(store.Orders(), store.Reviews(), events),
		store,
	)
	return facade, events
}

func register(t *testing.T, f *MarketFacade, login string, role model.Role) policy.Actor {
	t.Helper()
	acc, token, err := f.Register(context.Background(), login, "secret", role)
	if err != nil {
		t.Fatalf("register %s: %v", login, err)
	}
	if token == "" {
		t.Fatalf("expected token for %s", login)
	}
	return policy.Actor{ID: acc.ID, Role: acc.Role}
}

func TestMarketFacadeAuth(t *testing.T) {
	facade, _ := newFacade(t)
	farmer := register(t, facade, "farmer", model.RoleFarmer)

	acc, _, err := facade.Authenticate(context.Background(), "farmer", "secret")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if acc.ID != farmer.ID || acc.Role != model.RoleFarmer {
		t.Fatalf("unexpected account %+v", acc)
	}

	if _, _, err := facade.Authenticate(context.Background(), "farmer", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	identity, err := facade.ParseToken("anything")
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if identity.UserID != 42 || identity.Role != model.RoleFarmer {
		t.Fatalf("unexpected identity %+v", identity)
	}
}

func TestMarketFacadeNegotiatedPurchaseAndReview(t *testing.T) {
	facade, events := newFacade(t)
	ctx := context.Background()
	farmer := register(t, facade, "farmer", model.RoleFarmer)
	buyer := register(t, facade, "buyer", model.RoleBuyer)

	listing, err := facade.CreateListing(ctx, farmer, model.Listing{
		Title:      "Potatoes",
		Unit:       "kg",
		Price:      decimal.NewFromInt(100),
		Available:  10,
		Negotiable: true,
	})
	if err != nil {
		t.Fatalf("create listing: %v", err)
	}
	if got, err := facade.Listing(ctx, listing.ID); err != nil || got.Title != "Potatoes" {
		t.Fatalf("unexpected listing %+v err=%v", got, err)
	}

	session, err := facade.SubmitOffer(ctx, buyer, listing.ID, decimal.NewFromInt(80), 0)
	if err != nil {
		t.Fatalf("submit offer: %v", err)
	}
	if _, err := facade.Negotiation(ctx, buyer, session.ID); err != nil {
		t.Fatalf("get negotiation: %v", err)
	}
	session, err = facade.AcceptOffer(ctx, farmer, session.ID)
	if err != nil {
		t.Fatalf("accept offer: %v", err)
	}
	if session.AgreedPrice == nil || !session.AgreedPrice.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("unexpected agreed price %v", session.AgreedPrice)
	}

	order, err := facade.CreateOrder(ctx, buyer, usecase.CreateOrderRequest{
		Lines:           []usecase.LineRequest{{ListingID: listing.ID, Quantity: 2, NegotiationID: &session.ID}},
		ShippingAddress: "1 Farm Road",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if !order.Total.Equal(decimal.NewFromInt(160)) {
		t.Fatalf("expected total 160, got %s", order.Total)
	}

	if _, err := facade.CreateReview(ctx, buyer, usecase.CreateReviewRequest{OrderID: order.ID, Rating: 5, Comment: "fresh"}); !errors.Is(err, domainErrors.ErrOrderNotDelivered) {
		t.Fatalf("expected review gate, got %v", err)
	}

	for _, next := range []model.OrderStatus{model.OrderStatusProcessing, model.OrderStatusShipped, model.OrderStatusDelivered} {
		status := next
		if order, err = facade.PatchOrder(ctx, farmer, order.ID, usecase.OrderPatch{Status: &status}); err != nil {
			t.Fatalf("advance to %s: %v", next, err)
		}
	}

	review, err := facade.CreateReview(ctx, buyer, usecase.CreateReviewRequest{OrderID: order.ID, Rating: 5, Comment: "fresh"})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	if _, err := facade.ReplyToReview(ctx, farmer, review.ID, "thank you"); err != nil {
		t.Fatalf("reply: %v", err)
	}
	reviews, err := facade.FarmerReviews(ctx, farmer.ID)
	if err != nil || len(reviews) != 1 || reviews[0].Reply == nil {
		t.Fatalf("unexpected farmer reviews %+v err=%v", reviews, err)
	}

	if len(events.Events()) == 0 {
		t.Fatal("expected marketplace events to be published")
	}
}

func TestMarketFacadeOrdersAndCancel(t *testing.T) {
	facade, _ := newFacade(t)
	ctx := context.Background()
	farmer := register(t, facade, "farmer", model.RoleFarmer)
	buyer := register(t, facade, "buyer", model.RoleBuyer)

	listing, err := facade.CreateListing(ctx, farmer, model.Listing{Title: "Eggs", Unit: "dozen", Price: decimal.NewFromInt(5), Available: 3})
	if err != nil {
		t.Fatalf("create listing: %v", err)
	}
	order, err := facade.CreateOrder(ctx, buyer, usecase.CreateOrderRequest{
		Lines:           []usecase.LineRequest{{ListingID: listing.ID, Quantity: 3}},
		ShippingAddress: "2 Hill Lane",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	listed, err := facade.Orders(ctx, farmer, "")
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected farmer to see one order, got %v err=%v", listed, err)
	}
	if _, err := facade.Order(ctx, buyer, order.ID); err != nil {
		t.Fatalf("get order: %v", err)
	}

	cancelled, err := facade.CancelOrder(ctx, buyer, order.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != model.OrderStatusCancelled {
		t.Fatalf("expected cancelled order, got %s", cancelled.Status)
	}

	restocked, err := facade.Listing(ctx, listing.ID)
	if err != nil {
		t.Fatalf("get listing: %v", err)
	}
	if restocked.Available != 3 {
		t.Fatalf("expected stock to be restored, got %d", restocked.Available)
	}

	price := decimal.NewFromInt(6)
	if _, err := facade.UpdateListing(ctx, buyer, listing.ID, model.ListingPatch{Price: &price}); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden for buyer editing listing, got %v", err)
	}
	if _, err := facade.RejectOffer(ctx, buyer, 999); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown session, got %v", err)
	}
}

func TestMarketFacadeHealth(t *testing.T) {
	facade, _ := newFacade(t)
	if err := facade.Health(context.Background()); err != nil {
		t.Fatalf("expected healthy memory store, got %v", err)
	}

	facade.storage = unhealthyStore{Factory: facade.storage}
	if err := facade.Health(context.Background()); err == nil {
		t.Fatal("expected health error")
	}
}

package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/policy"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/storage/memory"
	testhelpers "github.com/AmanKr31/Farm-Bazzar-sub000/internal/test"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/usecase"
)

var (
	buyerA      = policy.Actor{ID: 1, Role: model.RoleBuyer}
	buyerB      = policy.Actor{ID: 2, Role: model.RoleBuyer}
	farmer      = policy.Actor{ID: 10, Role: model.RoleFarmer}
	otherFarmer = policy.Actor{ID: 11, Role: model.RoleFarmer}
	admin       = policy.Actor{ID: 99, Role: model.RoleAdmin}
)

type market struct {
	store       *memory.Store
	events      *testhelpers.EventPublisherStub
	catalog     *usecase.CatalogUseCase
	negotiation *usecase.NegotiationUseCase
	orders      *usecase.OrderUseCase
	reviews     *usecase.ReviewUseCase
}

func newMarket(t *testing.T) *market {
	t.Helper()
	store := memory.New()
	events := &testhelpers.EventPublisherStub{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return &market{
		store:       store,
		events:      events,
		catalog:     usecase.NewCatalogUseCase(store.Listings()),
		negotiation: usecase.NewNegotiationUseCase(store.Listings(), store.Negotiations(), events, logger),
		orders:      usecase.NewOrderUseCase(store, store.Listings(), store.Negotiations(), store.Orders(), events, logger),
		reviews:     usecase.NewReviewUseCase(store.Orders(), store.Reviews(), events),
	}
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (m *market) listing(t *testing.T, p string, available int64, negotiable bool) *model.Listing {
	t.Helper()
	l, err := m.catalog.Create(context.Background(), farmer, model.Listing{
		Title:      "Tomatoes",
		Unit:       "kg",
		Price:      price(p),
		Available:  available,
		Negotiable: negotiable,
	})
	if err != nil {
		t.Fatalf("create listing: %v", err)
	}
	return l
}

func (m *market) order(t *testing.T, listingID, quantity int64) *model.Order {
	t.Helper()
	o, err := m.orders.Create(context.Background(), buyerA, usecase.CreateOrderRequest{
		Lines:           []usecase.LineRequest{{ListingID: listingID, Quantity: quantity}},
		ShippingAddress: "1 Farm Road",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return o
}

func (m *market) advance(t *testing.T, orderID int64, statuses ...model.OrderStatus) *model.Order {
	t.Helper()
	var (
		o   *model.Order
		err error
	)
	for _, s := range statuses {
		if o, err = m.orders.UpdateStatus(context.Background(), farmer, orderID, s); err != nil {
			t.Fatalf("advance to %s: %v", s, err)
		}
	}
	return o
}

func (m *market) available(t *testing.T, listingID int64) int64 {
	t.Helper()
	l, err := m.catalog.Get(context.Background(), listingID)
	if err != nil {
		t.Fatalf("get listing: %v", err)
	}
	return l.Available
}

func expectErr(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("expected %v, got %v", target, err)
	}
}

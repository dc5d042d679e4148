package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/policy"
	pkgAuth "github.com/AmanKr31/Farm-Bazzar-sub000/internal/pkg/auth"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/server/http/handlers"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/server/http/middleware"
	testhelpers "github.com/AmanKr31/Farm-Bazzar-sub000/internal/test"
)

func newEngine(facade testhelpers.MarketFacadeStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return Setup(facade, logger)
}

func serve(engine *gin.Engine, method, target string, body any, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	return resp
}

func TestSetupRoutes(t *testing.T) {
	engine := newEngine(testhelpers.MarketFacadeStub{})

	resp := serve(engine, http.MethodPost, "/api/auth/register", map[string]string{"login": "user", "password": "pass", "role": "buyer"}, "")
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201 for register, got %d", resp.Code)
	}
	if resp.Header().Get(middleware.RequestIDHeader) == "" {
		t.Fatal("expected request id header on every response")
	}

	routes := []struct {
		method string
		target string
		body   any
		status int
	}{
		{http.MethodPost, "/api/auth/login", map[string]string{"login": "user", "password": "pass"}, http.StatusOK},
		{http.MethodGet, "/api/health", nil, http.StatusOK},
		{http.MethodGet, "/api/listings/1", nil, http.StatusOK},
		{http.MethodGet, "/api/farmers/10/reviews", nil, http.StatusOK},
		{http.MethodPost, "/api/listings", map[string]any{"title": "Tomatoes", "unit": "kg", "price": "100", "available": 5}, http.StatusCreated},
		{http.MethodPatch, "/api/listings/1", map[string]any{"available": 3}, http.StatusOK},
		{http.MethodPost, "/api/order", map[string]any{"lines": []map[string]any{{"listing_id": 1, "quantity": 2}}, "shipping_address": "x"}, http.StatusCreated},
		{http.MethodGet, "/api/order/1", nil, http.StatusOK},
		{http.MethodPatch, "/api/order/1", map[string]any{"payment_status": "paid"}, http.StatusOK},
		{http.MethodPost, "/api/order/1/cancel", nil, http.StatusOK},
		{http.MethodGet, "/api/orders", nil, http.StatusOK},
		{http.MethodPost, "/api/negotiation/1/offer", map[string]any{"price": "80"}, http.StatusOK},
		{http.MethodGet, "/api/negotiation/1", nil, http.StatusOK},
		{http.MethodPost, "/api/negotiation/1/accept", nil, http.StatusOK},
		{http.MethodPost, "/api/negotiation/1/reject", nil, http.StatusOK},
		{http.MethodPost, "/api/review", map[string]any{"order_id": 1, "rating": 5}, http.StatusCreated},
		{http.MethodPatch, "/api/review/1/reply", map[string]string{"text": "thanks"}, http.StatusOK},
	}
	for _, r := range routes {
		resp := serve(engine, r.method, r.target, r.body, "token")
		if resp.Code != r.status {
			t.Errorf("%s %s: expected status %d, got %d", r.method, r.target, r.status, resp.Code)
		}
	}
}

func TestSetupProtectsRoutes(t *testing.T) {
	engine := newEngine(testhelpers.MarketFacadeStub{})

	for _, target := range []string{"/api/orders", "/api/order/1", "/api/negotiation/1"} {
		resp := serve(engine, http.MethodGet, target, nil, "")
		if resp.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: expected 401, got %d", target, resp.Code)
		}
	}
}

func TestSetupPassesIdentityToHandlers(t *testing.T) {
	var seen policy.Actor
	facade := testhelpers.MarketFacadeStub{
		AuthFacadeStub: testhelpers.AuthFacadeStub{ParseFn: func(string) (pkgAuth.Identity, error) {
			return pkgAuth.Identity{UserID: 10, Role: model.RoleFarmer}, nil
		}},
		OrderFacadeStub: testhelpers.OrderFacadeStub{ListFn: func(ctx context.Context, actor policy.Actor, status model.OrderStatus) ([]model.Order, error) {
			seen = actor
			return nil, nil
		}},
	}
	engine := newEngine(facade)

	resp := serve(engine, http.MethodGet, "/api/orders", nil, "token")
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
	if seen.ID != 10 || seen.Role != model.RoleFarmer {
		t.Fatalf("unexpected actor %+v", seen)
	}
}

var _ handlers.MarketFacade = (*testhelpers.MarketFacadeStub)(nil)

package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/app"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/config"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/repository"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/server/http/handlers"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/usecase"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/worker"
)

func testConfig() *config.Config {
	return &config.Config{
		RunAddress:      "127.0.0.1:0",
		StorageDriver:   config.StorageMemory,
		JWTSecret:       "secret",
		TokenTTL:        time.Hour,
		ShutdownTimeout: time.Second,
		NotifyWorkers:   1,
		NotifyQueueSize: 4,
		AdminLogin:      "root",
		AdminPassword:   "toor",
	}
}

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	var (
		facade     *app.MarketFacade
		httpFacade handlers.MarketFacade
		publisher  usecase.EventPublisher
		dispatcher *worker.Dispatcher
		factory    repository.Factory
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(testConfig()),
			fx.Replace(logger),
		),
		fx.Populate(&facade, &httpFacade, &publisher, &dispatcher, &factory),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	if facade == nil || httpFacade == nil {
		t.Fatal("expected market facade instance")
	}
	if publisher != usecase.EventPublisher(dispatcher) {
		t.Fatal("expected use cases to publish through the dispatcher")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fxApp.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })

	admin, err := factory.Accounts().GetByLogin(ctx, "root")
	if err != nil {
		t.Fatalf("expected admin account after start: %v", err)
	}
	if admin.Role != model.RoleAdmin {
		t.Fatalf("expected admin role, got %s", admin.Role)
	}
	if err := facade.Health(ctx); err != nil {
		t.Fatalf("expected healthy storage, got %v", err)
	}
}

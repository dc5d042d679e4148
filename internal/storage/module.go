package storage

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/config"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/repository"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/storage/memory"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/storage/postgres"
)

// Module selects the configured storage driver and exposes its repositories.
var Module = fx.Options(
	fx.Provide(newFactory),
	fx.Provide(
		func(f repository.Factory) repository.Transactor { return f },
		func(f repository.Factory) repository.AccountRepository { return f.Accounts() },
		func(f repository.Factory) repository.ListingRepository { return f.Listings() },
		func(f repository.Factory) repository.NegotiationRepository { return f.Negotiations() },
		func(f repository.Factory) repository.OrderRepository { return f.Orders() },
		func(f repository.Factory) repository.ReviewRepository { return f.Reviews() },
	),
)

type factoryParams struct {
	fx.In

	Ctx       context.Context
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

// openPostgres is replaced in tests.
var openPostgres = func(ctx context.Context, lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (repository.Factory, error) {
	s, err := postgres.Open(ctx, lc, cfg, logger)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func newFactory(p factoryParams) (repository.Factory, error) {
	switch p.Config.StorageDriver {
	case config.StorageMemory:
		p.Logger.Warn("using in-memory storage, data is lost on restart")
		return memory.New(), nil
	case config.StoragePostgres, "":
		return openPostgres(p.Ctx, p.Lifecycle, p.Config, p.Logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", p.Config.StorageDriver)
	}
}

package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/config"
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// Open connects to PostgreSQL using the configured DSN and closes the pool
// when the application stops.
func Open(ctx context.Context, lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (*Storage, error) {
	storage, err := newStorage(storageParams{Ctx: ctx, Config: cfg, Logger: logger})
	if err != nil {
		return nil, err
	}
	registerLifecycle(lc, storage)
	return storage, nil
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.logger.Info("closing postgres pool")
			storage.Close()
			return nil
		},
	})
}

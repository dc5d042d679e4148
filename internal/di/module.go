package di

import (
	"go.uber.org/fx"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/adapter/webhook"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/app"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/config"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/logger"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/pkg/auth"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/server/http/router"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/storage"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/usecase"
)

// Module assembles the application graph. Extra options are appended last
// so callers can replace any provided value.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		storage.Module,
		webhook.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

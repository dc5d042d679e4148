package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/adapter/webhook"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/config"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/server/http/handlers"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/usecase"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewMarketFacade,
		func(f *MarketFacade) handlers.MarketFacade { return f },
		newHTTPServer,
		newDispatcher,
		func(d *worker.Dispatcher) usecase.EventPublisher { return d },
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type dispatcherParams struct {
	fx.In

	Sender webhook.Sender
	Config *config.Config
	Logger *slog.Logger
}

func newDispatcher(p dispatcherParams) *worker.Dispatcher {
	return worker.NewDispatcher(
		p.Sender,
		p.Config.NotifyWorkers,
		p.Config.NotifyQueueSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Ctx        context.Context
	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Dispatcher *worker.Dispatcher
	Auth       *usecase.AuthUseCase
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := p.Auth.EnsureAdmin(ctx, p.Config.AdminLogin, p.Config.AdminPassword); err != nil {
				return err
			}

			p.Logger.Info("starting farmbazaar", slog.String("addr", p.Server.Addr))
			// workers outlive the start context
			p.Dispatcher.Start(p.Ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			err := p.Server.Shutdown(shutdownCtx)
			p.Dispatcher.Stop()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("farmbazaar stopped")
			return nil
		},
	})
}

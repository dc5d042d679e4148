package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/server/http/handlers"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/server/http/middleware"
)

const maxRequestBody = 1 << 20

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.LimitBody(maxRequestBody))
	engine.Use(middleware.DecompressRequest(maxRequestBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	listingHandler := handlers.NewListingHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	negotiationHandler := handlers.NewNegotiationHandler(facade)
	reviewHandler := handlers.NewReviewHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	api := engine.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/health", healthHandler.Health)
	api.GET("/listings/:id", listingHandler.Get)
	api.GET("/farmers/:id/reviews", reviewHandler.ListForFarmer)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))

	authed.POST("/listings", listingHandler.Create)
	authed.PATCH("/listings/:id", listingHandler.Update)

	authed.POST("/order", orderHandler.Create)
	authed.GET("/order/:id", orderHandler.Get)
	authed.PATCH("/order/:id", orderHandler.Update)
	authed.POST("/order/:id/cancel", orderHandler.Cancel)
	authed.GET("/orders", orderHandler.List)

	// the offer route takes the listing id, the others a session id
	authed.POST("/negotiation/:id/offer", negotiationHandler.Offer)
	authed.GET("/negotiation/:id", negotiationHandler.Get)
	authed.POST("/negotiation/:id/accept", negotiationHandler.Accept)
	authed.POST("/negotiation/:id/reject", negotiationHandler.Reject)

	authed.POST("/review", reviewHandler.Create)
	authed.PATCH("/review/:id/reply", reviewHandler.Reply)

	return engine
}

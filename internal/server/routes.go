package server

import (
	"github.com/cyphera/cyphera-relay/internal/handlers"
	"github.com/cyphera/cyphera-relay/internal/interfaces"
	"github.com/cyphera/cyphera-relay/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Dependencies are what the HTTP routes are served from
type Dependencies struct {
	Access      interfaces.IAccessControlService
	Oracle      interfaces.IPriceOracleService
	Pool        interfaces.IGasPoolService
	Registry    interfaces.IRelayerRegistryService
	Dispatcher  interfaces.IRelayDispatcherService
	MetaTx      interfaces.IMetaTransactionService
	EventReader interfaces.IEventReader

	Auth        *middleware.Authenticator
	RateLimiter *middleware.RateLimiter
	Metrics     *middleware.Metrics

	CORSAllowedOrigins []string
}

// Dependencies builds the route dependencies from the wired services
func (a *App) Dependencies() Dependencies {
	return Dependencies{
		Access:             a.Access,
		Oracle:             a.Oracle,
		Pool:               a.Pool,
		Registry:           a.Registry,
		Dispatcher:         a.Dispatcher,
		MetaTx:             a.MetaTx,
		EventReader:        a.EventReader,
		Auth:               middleware.NewAuthenticator([]byte(a.Config.JWTSecret), ""),
		RateLimiter:        middleware.NewRateLimiter(a.Config.RateLimitRPS, a.Config.RateLimitBurst),
		Metrics:            a.Metrics,
		CORSAllowedOrigins: a.Config.CORSAllowedOrigins,
	}
}

// NewRouter creates a gin engine with recovery and every route installed
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	InitializeRoutes(router, deps)
	return router
}

// InitializeRoutes installs middleware and the /api/v1 routes on router
func InitializeRoutes(router *gin.Engine, deps Dependencies) {
	router.Use(configureCORS(deps.CORSAllowedOrigins))
	router.Use(middleware.CorrelationIDMiddleware())
	router.Use(middleware.RequestLogger())
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	healthHandler := handlers.NewHealthHandler()
	router.GET("/health", healthHandler.Health)

	oracleHandler := handlers.NewOracleHandler(deps.Oracle)
	poolHandler := handlers.NewPoolHandler(deps.Pool)
	relayerHandler := handlers.NewRelayerHandler(deps.Registry)
	relayHandler := handlers.NewRelayHandler(deps.Dispatcher)
	metaTxHandler := handlers.NewMetaTransactionHandler(deps.MetaTx)
	adminHandler := handlers.NewAdminHandler(deps.Access)

	v1 := router.Group("/api/v1")
	v1.Use(deps.Auth.EnsureAuth())
	if deps.RateLimiter != nil {
		v1.Use(deps.RateLimiter.Middleware())
	}
	{
		oracle := v1.Group("/oracle")
		{
			oracle.POST("/update", oracleHandler.UpdatePrices)
			oracle.GET("/prices", oracleHandler.GetPrices)
			oracle.GET("/cost", oracleHandler.GetGasCost)
			oracle.PUT("/max-age", oracleHandler.SetMaxAge)
		}

		pool := v1.Group("/pool")
		{
			pool.GET("", poolHandler.GetPool)
			pool.POST("/cover", poolHandler.CoverGasFee)
			pool.POST("/replenish", poolHandler.ReplenishPool)
			pool.PUT("/tiers/:index", poolHandler.UpdateTier)
			pool.GET("/users/:address", poolHandler.GetUserAccount)
			pool.GET("/users/:address/estimate", poolHandler.EstimateCoverage)
			pool.POST("/users/:address/tier", poolHandler.UpdateUserTier)
		}

		relayers := v1.Group("/relayers")
		{
			relayers.GET("", relayerHandler.ListRelayers)
			relayers.POST("/register", relayerHandler.Register)
			relayers.POST("/deposit", relayerHandler.Deposit)
			relayers.POST("/withdraw", relayerHandler.Withdraw)
			relayers.PUT("/settings", relayerHandler.UpdateSettings)
			relayers.GET("/:address", relayerHandler.GetRelayer)
			relayers.POST("/:address/evict", relayerHandler.Evict)
		}

		relay := v1.Group("/relay")
		{
			relay.POST("/execute", relayHandler.ExecuteRelay)
			relay.POST("/batch", relayHandler.ExecuteBatch)
			relay.GET("/nonce/:address", relayHandler.GetNonce)
			relay.PUT("/max-gas", relayHandler.SetMaxGas)
		}

		meta := v1.Group("/meta")
		{
			meta.POST("/execute", metaTxHandler.ExecuteMetaTransaction)
			meta.GET("/nonce/:address", metaTxHandler.GetNonce)
		}

		admin := v1.Group("/admin")
		{
			admin.GET("/status", adminHandler.GetStatus)
			admin.POST("/pause", adminHandler.Pause)
			admin.POST("/unpause", adminHandler.Unpause)
			admin.PUT("/transfer-delay", adminHandler.UpdateTransferDelay)
			admin.GET("/roles/:role", adminHandler.GetRole)
			admin.POST("/roles/:role/grant", adminHandler.GrantRole)
			admin.POST("/roles/:role/revoke", adminHandler.RevokeRole)
			admin.POST("/roles/:role/transfer", adminHandler.InitiateTransfer)
			admin.POST("/roles/:role/transfer/complete", adminHandler.CompleteTransfer)
			admin.DELETE("/roles/:role/transfer", adminHandler.CancelTransfer)
		}

		if deps.EventReader != nil {
			v1.GET("/events", handlers.NewEventHandler(deps.EventReader).ListEvents)
		}
	}
}

// configureCORS allows the configured origins; "*" allows any origin
func configureCORS(origins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.CorrelationIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.CorrelationIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"}

	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	for _, origin := range origins {
		if origin == "*" {
			corsConfig.AllowAllOrigins = true
			return cors.New(corsConfig)
		}
	}
	corsConfig.AllowOrigins = origins
	return cors.New(corsConfig)
}

package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockstats/internal/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter builds the Gin engine serving the stats API.
//
// Middleware order:
//   - RequestID before RequestLogger, so the id is logged.
//   - RecoveryMiddleware inside the logger, so a recovered panic is logged as a 500.
//   - Timeout last; the deadline covers handler work only.
//
// Routes:
//   - GET /api/v1/stats
//   - GET /swagger/*any
//
// /healthz and /readyz are registered by app.InitializeApp, which owns the DB handle.
func NewRouter(handler *Handler, requestTimeout time.Duration) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(),
		middleware.Timeout(requestTimeout),
	)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	v1.GET("/stats", handler.GetStats)

	return router
}

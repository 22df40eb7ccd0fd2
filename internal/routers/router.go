// Package routers 组装 HTTP 路由与中间件链
package routers

import (
	"time"

	"github.com/haierkeys/document-vault-service/internal/app"
	"github.com/haierkeys/document-vault-service/internal/middleware"
	"github.com/haierkeys/document-vault-service/internal/routers/api_router"
	"github.com/haierkeys/document-vault-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/links",
		FillInterval: time.Second,
		Capacity:     50,
		Quantum:      50,
	},
	limiter.BucketRule{
		Key:          "/api/documents",
		FillInterval: time.Second,
		Capacity:     20,
		Quantum:      20,
	},
)

// NewRouter 创建 gin 引擎并注册全部路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	cfg := appContainer.Config()

	r := gin.New()

	r.GET("/metrics", api_router.MetricsHandler())

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo(appContainer.Version().Version))
		api.Use(middleware.TraceMiddleware(cfg.Tracer.Header))
		api.Use(api_router.MetricsMiddleware())
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLog(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		documentHandler := api_router.NewDocumentHandler(appContainer)
		linkHandler := api_router.NewLinkHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)

		api.GET("/health", healthHandler.Check)

		api.POST("/documents", documentHandler.Upload)
		api.GET("/documents", documentHandler.List)
		api.GET("/documents/:id", documentHandler.Get)
		api.GET("/documents/:id/content", documentHandler.Content)
		api.DELETE("/documents/:id", documentHandler.Delete)

		api.POST("/links", linkHandler.Create)
		api.GET("/links", linkHandler.List)
		api.POST("/links/cleanup", linkHandler.Cleanup)
		api.GET("/links/:id/validate", linkHandler.Validate)
		api.GET("/links/:id/download", linkHandler.Download)
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}

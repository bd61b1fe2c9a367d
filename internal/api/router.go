package api

import (
	"time"

	chatHandler "meal-planner/internal/api/handlers/chat"
	groceryHandler "meal-planner/internal/api/handlers/grocery"
	"meal-planner/internal/api/handlers/health"
	householdHandler "meal-planner/internal/api/handlers/household"
	mealplanHandler "meal-planner/internal/api/handlers/mealplan"
	recipeHandler "meal-planner/internal/api/handlers/recipe"
	"meal-planner/internal/api/middleware"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/infrastructure/metrics"
	"meal-planner/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 預設超時，菜單生成會連續呼叫 AI 多次
	defaultTimeout = 120 * time.Second
	// 請求體大小限制 (1MB)
	defaultMaxBodySize = 1 << 20
)

// Dependencies 路由所需的服務，由 main 組裝後注入
type Dependencies struct {
	Households householdHandler.Service
	Chat       interface {
		chatHandler.Service
		mealplanHandler.ConstraintSource
	}
	Planner mealplanHandler.Planner
	Grocery groceryHandler.Service
	Recipes recipeHandler.Resolver

	// 以下可為 nil
	DB    health.Pinger
	Queue health.QueueReporter
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	timeout := cfg.Server.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxBodySize := cfg.Server.MaxBodyBytes
	if maxBodySize <= 0 {
		maxBodySize = defaultMaxBodySize
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 健康檢查與指標路由，不受限流影響
	healthH := health.NewHandler(cfg, deps.DB, deps.Queue)
	router.GET("/health", healthH.HealthCheck)
	router.GET("/ready", healthH.ReadinessCheck)
	router.GET("/live", healthH.LivenessCheck)
	router.GET("/metrics", metrics.Handler())

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	// dedup_window 設為負值時關閉去重
	if cfg.DedupWindow >= 0 {
		api.Use(middleware.NewDeduplicator(cfg.DedupWindow).Middleware())
	}
	api.Use(middleware.Timeout(timeout))

	householdHandler.NewHandler(deps.Households).Register(api)
	chatHandler.NewHandler(deps.Chat).Register(api)
	mealplanHandler.NewHandler(deps.Planner, deps.Chat).Register(api)
	groceryHandler.NewHandler(deps.Grocery).Register(api)
	recipeHandler.NewHandler(deps.Recipes, deps.Households).Register(api)

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("timeout", timeout),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router
}

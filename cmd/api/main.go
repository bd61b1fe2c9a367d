package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meal-planner/internal/api"
	"meal-planner/internal/core/ai/openrouter"
	"meal-planner/internal/core/ai/queue"
	"meal-planner/internal/core/ai/service"
	"meal-planner/internal/core/chat"
	"meal-planner/internal/core/grocery"
	"meal-planner/internal/core/household"
	"meal-planner/internal/core/planner"
	"meal-planner/internal/core/recipe"
	"meal-planner/internal/infrastructure/cache"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/infrastructure/database"
	"meal-planner/internal/infrastructure/persistence"
	"meal-planner/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("openrouter_model", cfg.OpenRouter.Model),
		zap.String("database_driver", cfg.Database.Driver),
		zap.String("cache_driver", cfg.Cache.Driver),
	)

	// 資料庫
	db, err := database.Open(&cfg.Database)
	if err != nil {
		common.LogFatal("Failed to open database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if cfg.Database.AutoMigrate {
		if err := persistence.Migrate(db, cfg.Database.Driver); err != nil {
			common.LogFatal("Failed to migrate database", zap.Error(err))
		}
	}
	sqlDB, err := db.DB()
	if err != nil {
		common.LogFatal("Failed to get sql.DB", zap.Error(err))
	}

	// 快取，只在開啟但初始化失敗時才 Fatal
	resultCache, err := cache.New(&cfg.Cache)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	if resultCache != nil {
		defer func() { _ = resultCache.Close() }()
	}

	// AI：OpenRouter 客戶端經由隊列限制總併發
	client := openrouter.NewClient(&cfg.OpenRouter)
	queueManager := queue.NewManager(&cfg.Queue, client)
	queueManager.Start()
	defer func() { _ = queueManager.Close() }()
	aiService := service.NewService(queueManager, cfg.OpenRouter.RequestsPerSecond)

	// 儲存層
	recipeRepo := persistence.NewRecipeRepository(db)
	householdRepo := persistence.NewHouseholdRepository(db)
	mealPlanRepo := persistence.NewMealPlanRepository(db)
	groceryRepo := persistence.NewGroceryRepository(db)
	sessionRepo := persistence.NewSessionRepository(db)

	// 服務
	households := household.NewService(householdRepo)
	recipes := recipe.NewCache(recipeRepo, aiService)
	groceries := grocery.NewService(mealPlanRepo, groceryRepo, resultCache, cfg.Cache.TTL)
	plans := planner.NewService(households, recipes, mealPlanRepo, groceries, cfg.Planner)
	chats := chat.NewService(aiService, sessionRepo, households)

	if count, err := recipeRepo.Count(context.Background()); err == nil {
		common.LogInfo("食譜快取已載入", zap.Int64("recipes", count))
	}

	router := api.SetupRouter(cfg, &api.Dependencies{
		Households: households,
		Chat:       chats,
		Planner:    plans,
		Grocery:    groceries,
		Recipes:    recipes,
		DB:         sqlDB,
		Queue:      queueManager,
	})

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		return
	}

	common.LogInfo("Server exited")
}

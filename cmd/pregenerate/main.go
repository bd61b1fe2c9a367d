// Command pregenerate 預先填充食譜快取，讓新使用者的第一份菜單不必等待生成
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"meal-planner/internal/core/ai/openrouter"
	"meal-planner/internal/core/ai/queue"
	"meal-planner/internal/core/ai/service"
	"meal-planner/internal/core/recipe"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/infrastructure/database"
	"meal-planner/internal/infrastructure/persistence"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	concurrency := flag.Int("concurrency", 2, "recipes generated in parallel")
	limit := flag.Int("limit", 0, "only process the first N templates (0 = all)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	db, err := database.Open(&cfg.Database)
	if err != nil {
		common.LogFatal("Failed to open database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()
	if err := persistence.Migrate(db, cfg.Database.Driver); err != nil {
		common.LogFatal("Failed to migrate database", zap.Error(err))
	}

	manager := queue.NewManager(&cfg.Queue, openrouter.NewClient(&cfg.OpenRouter))
	manager.Start()
	defer func() { _ = manager.Close() }()

	repo := persistence.NewRecipeRepository(db)
	recipes := recipe.NewCache(repo, service.NewService(manager, cfg.OpenRouter.RequestsPerSecond))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	todo := seeds
	if *limit > 0 && *limit < len(todo) {
		todo = todo[:*limit]
	}

	before, err := repo.Count(ctx)
	if err != nil {
		common.LogFatal("Failed to count recipes", zap.Error(err))
	}
	common.LogInfo("開始預先生成食譜",
		zap.Int("templates", len(todo)),
		zap.Int64("existing", before),
	)

	start := time.Now()
	var failed int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(*concurrency, 1))
	for i, s := range todo {
		i, s := i, s
		g.Go(func() error {
			r, err := recipes.Develop(gctx, s.requirements())
			if err != nil {
				atomic.AddInt64(&failed, 1)
				common.LogWarn("食譜生成失敗",
					zap.Int("index", i),
					zap.String("cuisine", s.Cuisine),
					zap.String("meal_type", s.MealType),
					zap.Error(err),
				)
				return nil
			}
			common.LogInfo("食譜就緒",
				zap.Int("index", i),
				zap.String("recipe_id", r.ID),
				zap.String("name", r.Name),
			)
			return nil
		})
	}
	_ = g.Wait()

	after, err := repo.Count(context.Background())
	if err != nil {
		common.LogError("Failed to count recipes", zap.Error(err))
	}
	common.LogInfo("預先生成完成",
		zap.Int64("generated", after-before),
		zap.Int64("failed", atomic.LoadInt64(&failed)),
		zap.Int64("total", after),
		zap.Duration("duration", time.Since(start)),
	)
}

package planner

import (
	"context"
	"fmt"
	"time"

	"meal-planner/internal/core/recipe"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/infrastructure/metrics"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// HouseholdReader 讀取家庭檔案
type HouseholdReader interface {
	Get(ctx context.Context, id string) (*common.HouseholdProfile, error)
}

// RecipeResolver 依需求取得食譜
type RecipeResolver interface {
	Resolve(ctx context.Context, req recipe.Requirements) (*common.Recipe, error)
}

// Store 菜單儲存
type Store interface {
	Create(ctx context.Context, p *common.MealPlan) error
	Get(ctx context.Context, id string) (*common.MealPlan, error)
	ListByHousehold(ctx context.Context, householdID string, limit int) ([]common.MealPlan, error)
	Delete(ctx context.Context, id string) error
}

// GroceryInvalidator 菜單刪除時清除購物清單快取
type GroceryInvalidator interface {
	Invalidate(ctx context.Context, mealPlanID string)
}

// Service 一週菜單服務
// --------------------------------------------------
type Service struct {
	households HouseholdReader
	recipes    RecipeResolver
	store      Store
	grocery    GroceryInvalidator
	cfg        config.PlannerConfig
	now        func() time.Time
}

// NewService 創建菜單服務；grocery 可為 nil
func NewService(households HouseholdReader, recipes RecipeResolver, store Store, grocery GroceryInvalidator, cfg config.PlannerConfig) *Service {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 3
	}
	if cfg.ServingsFactor <= 0 {
		cfg.ServingsFactor = DefaultServingsFactor
	}
	return &Service{
		households: households,
		recipes:    recipes,
		store:      store,
		grocery:    grocery,
		cfg:        cfg,
		now:        time.Now,
	}
}

// Generate 為家庭產生一週菜單並儲存；每個餐點獨立，失敗的以備用食譜替代
func (s *Service) Generate(ctx context.Context, householdID string, constraints common.WeeklyConstraints) (*common.MealPlan, error) {
	profile, err := s.households.Get(ctx, householdID)
	if err != nil {
		return nil, err
	}
	profile.ApplyDefaults()
	if constraints == nil {
		constraints = common.WeeklyConstraints{}
	}

	start := time.Now()
	slots := PlanWeek(profile, constraints, s.cfg.ServingsFactor)
	meals := make([]common.MealSlot, len(slots))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i := range slots {
		i := i
		g.Go(func() error {
			meals[i] = s.resolveSlot(gctx, profile, slots[i])
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, common.Wrap(common.ErrRequestTimeout, err)
	}

	plan := &common.MealPlan{
		ID:            common.GenerateUUID(),
		HouseholdID:   profile.ID,
		WeekStartDate: common.NextMonday(s.now()).Format("2006-01-02"),
		Meals:         make(map[string]common.MealSlot, len(slots)),
		Constraints:   constraints,
		GeneratedAt:   s.now().UTC(),
	}
	fallbacks := 0
	for i, slot := range slots {
		plan.Meals[slot.Day] = meals[i]
		if meals[i].Kind == common.SlotFallback {
			fallbacks++
		}
	}

	if err := s.store.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to save meal plan: %w", err)
	}

	common.LogInfo("一週菜單已產生",
		zap.String("meal_plan_id", plan.ID),
		zap.String("household_id", plan.HouseholdID),
		zap.String("week_start", plan.WeekStartDate),
		zap.Int("fallbacks", fallbacks),
		zap.Duration("duration", time.Since(start)),
	)
	return plan, nil
}

// resolveSlot 解析單一天的餐點，不回傳錯誤
func (s *Service) resolveSlot(ctx context.Context, profile *common.HouseholdProfile, slot SlotRequirements) common.MealSlot {
	if slot.Skip {
		return common.MealSlot{Kind: slot.Placeholder, Note: placeholderNote(slot)}
	}

	if s.cfg.SlotTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.SlotTimeout)
		defer cancel()
	}

	r, err := s.recipes.Resolve(ctx, slot.Recipe(profile))
	if err != nil {
		metrics.FallbackSlots.Inc()
		common.LogWarn("餐點生成失敗，使用備用食譜",
			zap.String("day", slot.Day),
			zap.String("cuisine", slot.Cuisine),
			zap.Error(err),
		)
		return common.MealSlot{
			Kind:   common.SlotFallback,
			Recipe: recipe.FallbackRecipe(slot.Day, slot.Servings),
		}
	}
	return common.MealSlot{Kind: common.SlotRecipe, Recipe: r}
}

// Get 取得菜單
func (s *Service) Get(ctx context.Context, id string) (*common.MealPlan, error) {
	return s.store.Get(ctx, id)
}

// ListByHousehold 列出家庭的菜單，新的在前
func (s *Service) ListByHousehold(ctx context.Context, householdID string, limit int) ([]common.MealPlan, error) {
	return s.store.ListByHousehold(ctx, householdID, limit)
}

// Delete 刪除菜單，連同購物清單
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	if s.grocery != nil {
		s.grocery.Invalidate(ctx, id)
	}
	common.LogInfo("菜單已刪除", zap.String("meal_plan_id", id))
	return nil
}

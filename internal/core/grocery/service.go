package grocery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"meal-planner/internal/infrastructure/cache"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// MealPlanReader 讀取菜單
type MealPlanReader interface {
	Get(ctx context.Context, id string) (*common.MealPlan, error)
}

// Store 購物清單儲存
type Store interface {
	Upsert(ctx context.Context, g *common.GroceryList) error
	Get(ctx context.Context, id string) (*common.GroceryList, error)
	GetByMealPlan(ctx context.Context, mealPlanID string) (*common.GroceryList, error)
	Delete(ctx context.Context, id string) (string, error)
}

// Service 購物清單服務
type Service struct {
	plans MealPlanReader
	store Store
	cache cache.Cache
	ttl   time.Duration
}

// NewService 建立購物清單服務；c 可為 nil
func NewService(plans MealPlanReader, store Store, c cache.Cache, ttl time.Duration) *Service {
	return &Service{plans: plans, store: store, cache: c, ttl: ttl}
}

func cacheKey(mealPlanID string) string {
	return "grocery:" + mealPlanID
}

// Generate 由菜單重新產生購物清單；同一菜單重複產生結果相同並覆寫同一筆
func (s *Service) Generate(ctx context.Context, mealPlanID string) (*common.GroceryList, error) {
	plan, err := s.plans.Get(ctx, mealPlanID)
	if err != nil {
		return nil, err
	}

	lines := CollectIngredients(plan)
	list := &common.GroceryList{
		MealPlanID: plan.ID,
		Items:      BuildItems(lines),
	}

	if err := s.store.Upsert(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to save grocery list: %w", err)
	}

	common.LogInfo("購物清單已產生",
		zap.String("meal_plan_id", plan.ID),
		zap.Int("ingredient_lines", len(lines)),
		zap.Int("categories", len(list.Items)),
	)

	s.writeCache(ctx, list)
	return list, nil
}

// Get 以 ID 取得購物清單
func (s *Service) Get(ctx context.Context, id string) (*common.GroceryList, error) {
	return s.store.Get(ctx, id)
}

// GetByMealPlan 取得菜單的購物清單，先查快取
func (s *Service) GetByMealPlan(ctx context.Context, mealPlanID string) (*common.GroceryList, error) {
	if s.cache != nil {
		data, err := s.cache.Get(ctx, cacheKey(mealPlanID))
		switch {
		case err == nil:
			var list common.GroceryList
			if jsonErr := json.Unmarshal(data, &list); jsonErr == nil {
				common.LogCacheHit("grocery", mealPlanID)
				return &list, nil
			}
		case !errors.Is(err, cache.ErrMiss):
			common.LogWarn("購物清單快取讀取失敗", zap.Error(err))
		}
	}

	list, err := s.store.GetByMealPlan(ctx, mealPlanID)
	if err != nil {
		return nil, err
	}
	s.writeCache(ctx, list)
	return list, nil
}

// Delete 刪除購物清單並清除快取
func (s *Service) Delete(ctx context.Context, id string) error {
	mealPlanID, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.Invalidate(ctx, mealPlanID)
	return nil
}

// Invalidate 清除菜單對應的快取
func (s *Service) Invalidate(ctx context.Context, mealPlanID string) {
	if s.cache == nil || mealPlanID == "" {
		return
	}
	if err := s.cache.Delete(ctx, cacheKey(mealPlanID)); err != nil {
		common.LogWarn("購物清單快取清除失敗", zap.String("meal_plan_id", mealPlanID), zap.Error(err))
	}
}

func (s *Service) writeCache(ctx context.Context, list *common.GroceryList) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(list.MealPlanID), data, s.ttl); err != nil {
		common.LogWarn("購物清單快取寫入失敗", zap.String("meal_plan_id", list.MealPlanID), zap.Error(err))
	}
}

package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meal-planner/internal/pkg/common"

	"gorm.io/gorm"
)

// GroceryRepository 購物清單儲存
type GroceryRepository struct {
	db *gorm.DB
}

// NewGroceryRepository 建立購物清單儲存
func NewGroceryRepository(db *gorm.DB) *GroceryRepository {
	return &GroceryRepository{db: db}
}

// Upsert 寫入菜單的購物清單；同一菜單已存在時覆寫同一筆
func (r *GroceryRepository) Upsert(ctx context.Context, g *common.GroceryList) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		var existing GroceryListModel
		err := tx.Where("meal_plan_id = ?", g.MealPlanID).First(&existing).Error
		switch {
		case err == nil:
			g.ID = existing.ID
			g.CreatedAt = existing.CreatedAt
			g.UpdatedAt = now
			m := groceryToModel(g)
			if err := tx.Model(&existing).Updates(map[string]interface{}{
				"items":                m.Items,
				"total_estimated_cost": m.TotalEstimatedCost,
				"updated_at":           now,
			}).Error; err != nil {
				return fmt.Errorf("failed to update grocery list: %w", err)
			}
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			if g.ID == "" {
				g.ID = common.GenerateUUID()
			}
			g.CreatedAt, g.UpdatedAt = now, now
			if err := tx.Create(groceryToModel(g)).Error; err != nil {
				return fmt.Errorf("failed to insert grocery list: %w", err)
			}
			return nil
		default:
			return fmt.Errorf("failed to load grocery list: %w", err)
		}
	})
}

// Get 以 ID 取得購物清單
func (r *GroceryRepository) Get(ctx context.Context, id string) (*common.GroceryList, error) {
	var m GroceryListModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "grocery list", id)
	}
	return groceryFromModel(&m), nil
}

// GetByMealPlan 以菜單 ID 取得購物清單
func (r *GroceryRepository) GetByMealPlan(ctx context.Context, mealPlanID string) (*common.GroceryList, error) {
	var m GroceryListModel
	if err := r.db.WithContext(ctx).First(&m, "meal_plan_id = ?", mealPlanID).Error; err != nil {
		return nil, notFoundOr(err, "grocery list for meal plan", mealPlanID)
	}
	return groceryFromModel(&m), nil
}

// Delete 刪除購物清單，回傳其菜單 ID 以便清除快取
func (r *GroceryRepository) Delete(ctx context.Context, id string) (string, error) {
	var m GroceryListModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return "", notFoundOr(err, "grocery list", id)
	}
	if err := r.db.WithContext(ctx).Delete(&GroceryListModel{}, "id = ?", id).Error; err != nil {
		return "", fmt.Errorf("failed to delete grocery list: %w", err)
	}
	return m.MealPlanID, nil
}

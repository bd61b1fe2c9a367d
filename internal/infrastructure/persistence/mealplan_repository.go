package persistence

import (
	"context"
	"fmt"

	"meal-planner/internal/pkg/common"

	"gorm.io/gorm"
)

// MealPlanRepository 菜單儲存
type MealPlanRepository struct {
	db *gorm.DB
}

// NewMealPlanRepository 建立菜單儲存
func NewMealPlanRepository(db *gorm.DB) *MealPlanRepository {
	return &MealPlanRepository{db: db}
}

// Create 新增菜單
func (r *MealPlanRepository) Create(ctx context.Context, p *common.MealPlan) error {
	if p.ID == "" {
		p.ID = common.GenerateUUID()
	}
	if err := r.db.WithContext(ctx).Create(mealPlanToModel(p)).Error; err != nil {
		return fmt.Errorf("failed to insert meal plan: %w", err)
	}
	return nil
}

// Get 取得菜單
func (r *MealPlanRepository) Get(ctx context.Context, id string) (*common.MealPlan, error) {
	var m MealPlanModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "meal plan", id)
	}
	return mealPlanFromModel(&m), nil
}

// ListByHousehold 列出家庭的菜單，新的在前
func (r *MealPlanRepository) ListByHousehold(ctx context.Context, householdID string, limit int) ([]common.MealPlan, error) {
	var rows []MealPlanModel
	tx := r.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("generated_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	out := make([]common.MealPlan, 0, len(rows))
	for i := range rows {
		out = append(out, *mealPlanFromModel(&rows[i]))
	}
	return out, nil
}

// Delete 刪除菜單與其購物清單
func (r *MealPlanRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&GroceryListModel{}, "meal_plan_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete grocery list: %w", err)
		}
		res := tx.Delete(&MealPlanModel{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete meal plan: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return common.Wrap(common.ErrNotFound, fmt.Errorf("meal plan %s", id))
		}
		return nil
	})
}

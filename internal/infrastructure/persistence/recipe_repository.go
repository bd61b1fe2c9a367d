package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"meal-planner/internal/pkg/common"

	"gorm.io/gorm"
)

// RecipeRepository 食譜儲存
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository 建立食譜儲存
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// FindCandidates 依條件查詢可重用的食譜，依使用次數由多到少排序
func (r *RecipeRepository) FindCandidates(ctx context.Context, q common.RecipeQuery) ([]common.Recipe, error) {
	tx := r.db.WithContext(ctx).Model(&RecipeModel{})

	if q.Cuisine != "" {
		tx = tx.Where(`LOWER(cuisine) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(q.Cuisine))+"%")
	}
	if q.MealType != "" {
		tx = tx.Where("meal_type = ?", q.MealType)
	}
	if q.MaxTime > 0 {
		tx = tx.Where("total_time <= ?", q.MaxTime)
	}

	tags := normalizeTags(q.DietaryTags)
	filterInDB := r.isPostgres()
	if len(tags) > 0 && filterInDB {
		data, err := json.Marshal(tags)
		if err != nil {
			return nil, fmt.Errorf("failed to encode dietary tags: %w", err)
		}
		tx = tx.Where("dietary_tags @> ?::jsonb", string(data))
	}

	tx = tx.Order("times_used DESC").Order("created_at ASC")
	if q.Limit > 0 && (filterInDB || len(tags) == 0) {
		tx = tx.Limit(q.Limit)
	}

	var rows []RecipeModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}

	out := make([]common.Recipe, 0, len(rows))
	for i := range rows {
		rec := recipeFromModel(&rows[i])
		if !filterInDB && !containsAllTags(rec.DietaryTags, tags) {
			continue
		}
		out = append(out, *rec)
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}
	return out, nil
}

// Create 新增食譜
func (r *RecipeRepository) Create(ctx context.Context, recipe *common.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = common.GenerateUUID()
	}
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(recipeToModel(recipe)).Error; err != nil {
		return fmt.Errorf("failed to insert recipe: %w", err)
	}
	return nil
}

// IncrementUsage 使用次數加一，單一原子更新
func (r *RecipeRepository) IncrementUsage(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&RecipeModel{}).
		Where("id = ?", id).
		UpdateColumn("times_used", gorm.Expr("times_used + ?", 1))
	if res.Error != nil {
		return fmt.Errorf("failed to increment recipe usage: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.Wrap(common.ErrNotFound, fmt.Errorf("recipe %s", id))
	}
	return nil
}

// Get 以 ID 取得食譜
func (r *RecipeRepository) Get(ctx context.Context, id string) (*common.Recipe, error) {
	var m RecipeModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "recipe", id)
	}
	return recipeFromModel(&m), nil
}

// Count 食譜總數
func (r *RecipeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&RecipeModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return n, nil
}

func (r *RecipeRepository) isPostgres() bool {
	return r.db.Dialector != nil && r.db.Dialector.Name() == "postgres"
}

// likeEscaper 讓 LIKE 的萬用字元只比對字面
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func containsAllTags(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]bool, len(have))
	for _, t := range have {
		set[strings.ToLower(strings.TrimSpace(t))] = true
	}
	for _, t := range want {
		if !set[t] {
			return false
		}
	}
	return true
}

// notFoundOr 將 gorm 的查無資料轉為 ErrNotFound
func notFoundOr(err error, kind, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.Wrap(common.ErrNotFound, fmt.Errorf("%s %s", kind, id))
	}
	return fmt.Errorf("failed to load %s: %w", kind, err)
}

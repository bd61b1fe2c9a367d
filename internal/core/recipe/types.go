package recipe

import (
	"context"
	"strings"

	"meal-planner/internal/pkg/common"
)

// Store 食譜儲存
type Store interface {
	FindCandidates(ctx context.Context, q common.RecipeQuery) ([]common.Recipe, error)
	Create(ctx context.Context, recipe *common.Recipe) error
	IncrementUsage(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*common.Recipe, error)
}

// Requirements 單一餐點的食譜需求
type Requirements struct {
	Cuisine             string   `json:"cuisine" validate:"required"`
	MealType            string   `json:"meal_type" validate:"omitempty,oneof=breakfast lunch dinner"`
	MaxTime             int      `json:"max_cooking_time" validate:"gte=0"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Servings            int      `json:"servings" validate:"gte=0,lte=50"`
	SkillLevel          string   `json:"skill_level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Equipment           []string `json:"available_equipment"`
	Protein             string   `json:"protein,omitempty"`
	SpecialRequirements []string `json:"special_requests,omitempty"`

	// Household 只用於提示詞的家庭背景，可為 nil
	Household *common.HouseholdProfile `json:"-"`
}

// normalize 補上預設值並統一飲食限制格式
func (r *Requirements) normalize() {
	r.Cuisine = strings.TrimSpace(r.Cuisine)
	if r.MealType == "" {
		r.MealType = common.DefaultMealType
	}
	if r.SkillLevel == "" {
		r.SkillLevel = string(common.SkillIntermediate)
	}
	if r.Servings <= 0 {
		r.Servings = 4
	}

	seen := make(map[string]bool, len(r.DietaryRestrictions))
	tags := make([]string, 0, len(r.DietaryRestrictions))
	for _, t := range r.DietaryRestrictions {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	r.DietaryRestrictions = tags
}

// query 轉換成儲存層查詢條件，只取最常用的一筆
func (r *Requirements) query() common.RecipeQuery {
	return common.RecipeQuery{
		Cuisine:     r.Cuisine,
		MealType:    r.MealType,
		MaxTime:     r.MaxTime,
		DietaryTags: r.DietaryRestrictions,
		Limit:       1,
	}
}

// Adaptation 改編既有食譜的需求；未填的欄位沿用原食譜
type Adaptation struct {
	Servings            int      `json:"servings,omitempty" validate:"gte=0,lte=50"`
	MaxTime             int      `json:"max_cooking_time,omitempty" validate:"gte=0"`
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty"`
	SkillLevel          string   `json:"skill_level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Equipment           []string `json:"available_equipment,omitempty"`
	Notes               string   `json:"notes,omitempty"`

	Household *common.HouseholdProfile `json:"-"`
}

func (a *Adaptation) isEmpty() bool {
	return a.Servings <= 0 && a.MaxTime <= 0 && len(a.DietaryRestrictions) == 0 &&
		a.SkillLevel == "" && len(a.Equipment) == 0 && strings.TrimSpace(a.Notes) == ""
}

// requirements 以原食譜為基礎套上改編需求，用於補齊 AI 未提供的欄位
func (a *Adaptation) requirements(original *common.Recipe) Requirements {
	req := Requirements{
		Cuisine:             original.Cuisine,
		MealType:            original.MealType,
		MaxTime:             a.MaxTime,
		DietaryRestrictions: a.DietaryRestrictions,
		Servings:            a.Servings,
		SkillLevel:          a.SkillLevel,
		Household:           a.Household,
	}
	if req.Servings <= 0 {
		req.Servings = original.Servings
	}
	if req.SkillLevel == "" {
		req.SkillLevel = original.Difficulty
	}
	req.normalize()
	return req
}

// Adapted 改編結果
type Adapted struct {
	Recipe          *common.Recipe `json:"recipe"`
	AdaptedFrom     string         `json:"adapted_from"`
	AdaptationNotes string         `json:"adaptation_notes,omitempty"`
}

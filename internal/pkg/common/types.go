package common

import (
	"strings"
	"time"
)

// CookingSkill 烹飪技能等級
type CookingSkill string

const (
	SkillBeginner     CookingSkill = "beginner"
	SkillIntermediate CookingSkill = "intermediate"
	SkillAdvanced     CookingSkill = "advanced"
)

const (
	// DefaultMaxCookingTime 未指定時的最長烹飪時間（分鐘）
	DefaultMaxCookingTime = 30
	// DefaultMealType 預設餐別
	DefaultMealType = "dinner"
)

// HouseholdMember 家庭成員
type HouseholdMember struct {
	Name                string   `json:"name" validate:"required"`
	Age                 *int     `json:"age" validate:"omitempty,gte=0,lte=130"`
	IsAdult             bool     `json:"is_adult"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
}

// HouseholdProfile 家庭檔案
type HouseholdProfile struct {
	ID               string            `json:"id"`
	UserID           *string           `json:"user_id,omitempty"`
	Members          []HouseholdMember `json:"members" validate:"required,min=1,dive"`
	CookingSkill     CookingSkill      `json:"cooking_skill" validate:"required,oneof=beginner intermediate advanced"`
	MaxCookingTime   int               `json:"max_cooking_time" validate:"gt=0"`
	BudgetPerWeek    *float64          `json:"budget_per_week,omitempty" validate:"omitempty,gte=0"`
	FavoriteCuisines []string          `json:"favorite_cuisines"`
	Dislikes         []string          `json:"dislikes"`
	KitchenEquipment []string          `json:"kitchen_equipment"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// ApplyDefaults 補上缺少的技能與時間
func (h *HouseholdProfile) ApplyDefaults() {
	if h.CookingSkill == "" {
		h.CookingSkill = SkillIntermediate
	}
	if h.MaxCookingTime <= 0 {
		h.MaxCookingTime = DefaultMaxCookingTime
	}
}

// Size 家庭人數
func (h *HouseholdProfile) Size() int {
	return len(h.Members)
}

// DietaryRestrictions 所有成員飲食限制的聯集（小寫、去重、保持出現順序）
func (h *HouseholdProfile) DietaryRestrictions() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range h.Members {
		for _, r := range m.DietaryRestrictions {
			r = strings.ToLower(strings.TrimSpace(r))
			if r == "" || r == "none" || seen[r] {
				continue
			}
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// Portions 份量
type Portions string

const (
	PortionsNormal  Portions = "normal"
	PortionsExtra   Portions = "extra"
	PortionsNone    Portions = "none"
	PortionsReduced Portions = "reduced"
)

// Complexity 料理複雜度
type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityNormal  Complexity = "normal"
	ComplexityComplex Complexity = "complex"
)

// DayConstraint 單日排程限制
type DayConstraint struct {
	Portions   Portions   `json:"portions"`
	Complexity Complexity `json:"complexity"`
	Notes      string     `json:"notes"`
}

// WeeklyConstraints 以星期為鍵的排程限制
type WeeklyConstraints map[string]DayConstraint

// For 取得某天的限制，缺少的欄位以 normal 補上
func (w WeeklyConstraints) For(day string) DayConstraint {
	c := w[strings.ToLower(day)]
	if c.Portions == "" {
		c.Portions = PortionsNormal
	}
	if c.Complexity == "" {
		c.Complexity = ComplexityNormal
	}
	return c
}

// Weekdays 一週七天，固定順序
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Nutrition 每份營養資訊
type Nutrition struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
}

// Recipe 食譜
type Recipe struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	PrepTime        int       `json:"prep_time"`
	CookTime        int       `json:"cook_time"`
	TotalTime       int       `json:"total_time"`
	Servings        int       `json:"servings"`
	Difficulty      string    `json:"difficulty"`
	Cuisine         string    `json:"cuisine"`
	MealType        string    `json:"meal_type"`
	Ingredients     []string  `json:"ingredients"`
	Instructions    []string  `json:"instructions"`
	EquipmentNeeded []string  `json:"equipment_needed"`
	DietaryTags     []string  `json:"dietary_tags"`
	Tips            []string  `json:"tips"`
	Nutrition       Nutrition `json:"nutrition_per_serving"`
	Source          string    `json:"source"`
	Keywords        []string  `json:"keywords"`
	PrimaryProtein  string    `json:"primary_protein"`
	MainIngredients []string  `json:"main_ingredients"`
	TimesUsed       int       `json:"times_used"`
	CreatedAt       time.Time `json:"created_at"`
}

// SlotKind 餐點格子的種類
type SlotKind string

const (
	SlotRecipe    SlotKind = "recipe"
	SlotFallback  SlotKind = "fallback"
	SlotNoCooking SlotKind = "no_cooking"
	SlotDiningOut SlotKind = "dining_out"
)

// MealSlot 某一天的晚餐安排
type MealSlot struct {
	Kind   SlotKind `json:"kind"`
	Recipe *Recipe  `json:"recipe,omitempty"`
	Note   string   `json:"note,omitempty"`
}

// MealPlan 一週菜單
type MealPlan struct {
	ID            string              `json:"id"`
	HouseholdID   string              `json:"household_id"`
	WeekStartDate string              `json:"week_start_date"`
	Meals         map[string]MealSlot `json:"meals"`
	Constraints   WeeklyConstraints   `json:"constraints"`
	GeneratedAt   time.Time           `json:"generated_at"`
}

// GroceryList 分類好的購物清單
type GroceryList struct {
	ID                 string              `json:"id"`
	MealPlanID         string              `json:"meal_plan_id"`
	Items              map[string][]string `json:"items"`
	TotalEstimatedCost *float64            `json:"total_estimated_cost"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// SessionType 對話類型
type SessionType string

const (
	SessionOnboarding     SessionType = "onboarding"
	SessionWeeklyPlanning SessionType = "weekly_planning"
)

// ChatMessage 對話訊息
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatSession 對話階段
type ChatSession struct {
	ID            string                 `json:"id"`
	Type          SessionType            `json:"session_type"`
	HouseholdID   *string                `json:"household_id,omitempty"`
	Messages      []ChatMessage          `json:"messages"`
	Completed     bool                   `json:"completed"`
	ExtractedData map[string]interface{} `json:"extracted_data,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// RecipeQuery 食譜快取查詢條件
type RecipeQuery struct {
	Cuisine     string   // 子字串比對，不分大小寫
	MealType    string   // 完全相符
	MaxTime     int      // total_time 上限，0 表示不限制
	DietaryTags []string // 食譜標籤必須包含全部
	Limit       int
}

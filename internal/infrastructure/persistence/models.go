package persistence

import (
	"encoding/json"
	"time"

	"meal-planner/internal/pkg/common"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HouseholdModel households 資料表
type HouseholdModel struct {
	ID               string  `gorm:"primaryKey;type:varchar(36)"`
	UserID           *string `gorm:"type:varchar(64);index"`
	Members          datatypes.JSON
	CookingSkill     string `gorm:"type:varchar(20);not null;default:intermediate"`
	MaxCookingTime   int    `gorm:"not null;default:30"`
	BudgetPerWeek    *float64
	FavoriteCuisines datatypes.JSON
	Dislikes         datatypes.JSON
	KitchenEquipment datatypes.JSON
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName 資料表名稱
func (HouseholdModel) TableName() string { return "households" }

// RecipeModel recipes 資料表
type RecipeModel struct {
	ID              string `gorm:"primaryKey;type:varchar(36)"`
	Name            string `gorm:"type:varchar(255);not null"`
	Description     string
	PrepTime        int
	CookTime        int
	TotalTime       int `gorm:"index:idx_recipes_lookup,priority:2"`
	Servings        int
	Difficulty      string `gorm:"type:varchar(20)"`
	Cuisine         string `gorm:"type:varchar(64)"`
	MealType        string `gorm:"type:varchar(20);index:idx_recipes_lookup,priority:1"`
	Ingredients     datatypes.JSON
	Instructions    datatypes.JSON
	EquipmentNeeded datatypes.JSON
	DietaryTags     datatypes.JSON
	Tips            datatypes.JSON
	Nutrition       datatypes.JSON
	Source          string `gorm:"type:varchar(32)"`
	Keywords        datatypes.JSON
	PrimaryProtein  string `gorm:"type:varchar(64)"`
	MainIngredients datatypes.JSON
	TimesUsed       int `gorm:"not null;default:0;index"`
	CreatedAt       time.Time
}

// TableName 資料表名稱
func (RecipeModel) TableName() string { return "recipes" }

// MealPlanModel meal_plans 資料表
type MealPlanModel struct {
	ID            string `gorm:"primaryKey;type:varchar(36)"`
	HouseholdID   string `gorm:"type:varchar(36);not null;index"`
	WeekStartDate string `gorm:"type:varchar(10);not null"`
	Meals         datatypes.JSON
	Constraints   datatypes.JSON
	GeneratedAt   time.Time
}

// TableName 資料表名稱
func (MealPlanModel) TableName() string { return "meal_plans" }

// GroceryListModel grocery_lists 資料表，每份菜單一筆
type GroceryListModel struct {
	ID                 string `gorm:"primaryKey;type:varchar(36)"`
	MealPlanID         string `gorm:"type:varchar(36);not null;uniqueIndex"`
	Items              datatypes.JSON
	TotalEstimatedCost *float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName 資料表名稱
func (GroceryListModel) TableName() string { return "grocery_lists" }

// ChatSessionModel chat_sessions 資料表
type ChatSessionModel struct {
	ID            string  `gorm:"primaryKey;type:varchar(36)"`
	SessionType   string  `gorm:"type:varchar(32);not null"`
	HouseholdID   *string `gorm:"type:varchar(36)"`
	Messages      datatypes.JSON
	Completed     bool
	ExtractedData datatypes.JSON
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName 資料表名稱
func (ChatSessionModel) TableName() string { return "chat_sessions" }

// AutoMigrate 以模型建立資料表，用於 SQLite 與測試
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&HouseholdModel{},
		&RecipeModel{},
		&MealPlanModel{},
		&GroceryListModel{},
		&ChatSessionModel{},
	)
}

// toJSON 序列化欄位；nil 切片存成空陣列
func toJSON(v interface{}) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil || string(data) == "null" {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}

// fromJSON 反序列化欄位，空值時保留零值
func fromJSON(data datatypes.JSON, v interface{}) {
	if len(data) == 0 {
		return
	}
	_ = json.Unmarshal(data, v)
}

func householdToModel(h *common.HouseholdProfile) *HouseholdModel {
	return &HouseholdModel{
		ID:               h.ID,
		UserID:           h.UserID,
		Members:          toJSON(h.Members),
		CookingSkill:     string(h.CookingSkill),
		MaxCookingTime:   h.MaxCookingTime,
		BudgetPerWeek:    h.BudgetPerWeek,
		FavoriteCuisines: toJSON(h.FavoriteCuisines),
		Dislikes:         toJSON(h.Dislikes),
		KitchenEquipment: toJSON(h.KitchenEquipment),
		CreatedAt:        h.CreatedAt,
		UpdatedAt:        h.UpdatedAt,
	}
}

func householdFromModel(m *HouseholdModel) *common.HouseholdProfile {
	h := &common.HouseholdProfile{
		ID:             m.ID,
		UserID:         m.UserID,
		CookingSkill:   common.CookingSkill(m.CookingSkill),
		MaxCookingTime: m.MaxCookingTime,
		BudgetPerWeek:  m.BudgetPerWeek,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	fromJSON(m.Members, &h.Members)
	fromJSON(m.FavoriteCuisines, &h.FavoriteCuisines)
	fromJSON(m.Dislikes, &h.Dislikes)
	fromJSON(m.KitchenEquipment, &h.KitchenEquipment)
	return h
}

func recipeToModel(r *common.Recipe) *RecipeModel {
	return &RecipeModel{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		PrepTime:        r.PrepTime,
		CookTime:        r.CookTime,
		TotalTime:       r.TotalTime,
		Servings:        r.Servings,
		Difficulty:      r.Difficulty,
		Cuisine:         r.Cuisine,
		MealType:        r.MealType,
		Ingredients:     toJSON(r.Ingredients),
		Instructions:    toJSON(r.Instructions),
		EquipmentNeeded: toJSON(r.EquipmentNeeded),
		DietaryTags:     toJSON(r.DietaryTags),
		Tips:            toJSON(r.Tips),
		Nutrition:       toJSON(r.Nutrition),
		Source:          r.Source,
		Keywords:        toJSON(r.Keywords),
		PrimaryProtein:  r.PrimaryProtein,
		MainIngredients: toJSON(r.MainIngredients),
		TimesUsed:       r.TimesUsed,
		CreatedAt:       r.CreatedAt,
	}
}

func recipeFromModel(m *RecipeModel) *common.Recipe {
	r := &common.Recipe{
		ID:             m.ID,
		Name:           m.Name,
		Description:    m.Description,
		PrepTime:       m.PrepTime,
		CookTime:       m.CookTime,
		TotalTime:      m.TotalTime,
		Servings:       m.Servings,
		Difficulty:     m.Difficulty,
		Cuisine:        m.Cuisine,
		MealType:       m.MealType,
		Source:         m.Source,
		PrimaryProtein: m.PrimaryProtein,
		TimesUsed:      m.TimesUsed,
		CreatedAt:      m.CreatedAt,
	}
	fromJSON(m.Ingredients, &r.Ingredients)
	fromJSON(m.Instructions, &r.Instructions)
	fromJSON(m.EquipmentNeeded, &r.EquipmentNeeded)
	fromJSON(m.DietaryTags, &r.DietaryTags)
	fromJSON(m.Tips, &r.Tips)
	fromJSON(m.Nutrition, &r.Nutrition)
	fromJSON(m.Keywords, &r.Keywords)
	fromJSON(m.MainIngredients, &r.MainIngredients)
	return r
}

func mealPlanToModel(p *common.MealPlan) *MealPlanModel {
	return &MealPlanModel{
		ID:            p.ID,
		HouseholdID:   p.HouseholdID,
		WeekStartDate: p.WeekStartDate,
		Meals:         toObjectJSON(p.Meals),
		Constraints:   toObjectJSON(p.Constraints),
		GeneratedAt:   p.GeneratedAt,
	}
}

func mealPlanFromModel(m *MealPlanModel) *common.MealPlan {
	p := &common.MealPlan{
		ID:            m.ID,
		HouseholdID:   m.HouseholdID,
		WeekStartDate: m.WeekStartDate,
		GeneratedAt:   m.GeneratedAt,
	}
	fromJSON(m.Meals, &p.Meals)
	fromJSON(m.Constraints, &p.Constraints)
	return p
}

func groceryToModel(g *common.GroceryList) *GroceryListModel {
	return &GroceryListModel{
		ID:                 g.ID,
		MealPlanID:         g.MealPlanID,
		Items:              toObjectJSON(g.Items),
		TotalEstimatedCost: g.TotalEstimatedCost,
		CreatedAt:          g.CreatedAt,
		UpdatedAt:          g.UpdatedAt,
	}
}

func groceryFromModel(m *GroceryListModel) *common.GroceryList {
	g := &common.GroceryList{
		ID:                 m.ID,
		MealPlanID:         m.MealPlanID,
		TotalEstimatedCost: m.TotalEstimatedCost,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
	fromJSON(m.Items, &g.Items)
	return g
}

func sessionToModel(s *common.ChatSession) *ChatSessionModel {
	m := &ChatSessionModel{
		ID:          s.ID,
		SessionType: string(s.Type),
		HouseholdID: s.HouseholdID,
		Messages:    toJSON(s.Messages),
		Completed:   s.Completed,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.ExtractedData != nil {
		m.ExtractedData = toObjectJSON(s.ExtractedData)
	}
	return m
}

func sessionFromModel(m *ChatSessionModel) *common.ChatSession {
	s := &common.ChatSession{
		ID:          m.ID,
		Type:        common.SessionType(m.SessionType),
		HouseholdID: m.HouseholdID,
		Completed:   m.Completed,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	fromJSON(m.Messages, &s.Messages)
	fromJSON(m.ExtractedData, &s.ExtractedData)
	return s
}

// toObjectJSON 序列化物件欄位；nil map 存成空物件
func toObjectJSON(v interface{}) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil || string(data) == "null" {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(data)
}

package persistence

import (
	"context"
	"testing"
	"time"

	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/infrastructure/database"
	"meal-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db, "sqlite"))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func seedRecipe(t *testing.T, repo *RecipeRepository, name, cuisine string, total, used int, tags ...string) *common.Recipe {
	t.Helper()
	r := &common.Recipe{
		Name:        name,
		Cuisine:     cuisine,
		MealType:    "dinner",
		TotalTime:   total,
		DietaryTags: tags,
		Ingredients: []string{"1 cup rice"},
		TimesUsed:   used,
	}
	require.NoError(t, repo.Create(context.Background(), r))
	return r
}

func TestRecipeRepository_FindCandidates(t *testing.T) {
	ctx := context.Background()
	repo := NewRecipeRepository(setupTestDB(t))

	seedRecipe(t, repo, "Pad Thai", "Thai", 25, 1, "vegetarian")
	popular := seedRecipe(t, repo, "Green Curry", "Thai Fusion", 30, 5, "vegetarian", "gluten-free")
	seedRecipe(t, repo, "Slow Massaman", "Thai", 90, 9, "vegetarian")
	seedRecipe(t, repo, "Tacos", "Mexican", 20, 3)

	got, err := repo.FindCandidates(ctx, common.RecipeQuery{
		Cuisine:     "thai",
		MealType:    "dinner",
		MaxTime:     30,
		DietaryTags: []string{"Vegetarian"},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, popular.ID, got[0].ID)
	assert.Equal(t, "Pad Thai", got[1].Name)

	got, err = repo.FindCandidates(ctx, common.RecipeQuery{
		Cuisine:     "thai",
		MealType:    "dinner",
		MaxTime:     30,
		DietaryTags: []string{"vegetarian", "gluten-free"},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Green Curry", got[0].Name)

	got, err = repo.FindCandidates(ctx, common.RecipeQuery{Cuisine: "thai", MealType: "lunch"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecipeRepository_CuisineWildcardsAreLiteral(t *testing.T) {
	ctx := context.Background()
	repo := NewRecipeRepository(setupTestDB(t))
	seedRecipe(t, repo, "Pad Thai", "Thai", 25, 1)
	seedRecipe(t, repo, "Tacos", "Mexican", 20, 3)

	for _, cuisine := range []string{"%", "_", "th_i", `\`} {
		got, err := repo.FindCandidates(ctx, common.RecipeQuery{Cuisine: cuisine})
		require.NoError(t, err, cuisine)
		assert.Empty(t, got, cuisine)
	}

	got, err := repo.FindCandidates(ctx, common.RecipeQuery{Cuisine: "hai"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Pad Thai", got[0].Name)
}

func TestRecipeRepository_IncrementUsage(t *testing.T) {
	ctx := context.Background()
	repo := NewRecipeRepository(setupTestDB(t))
	r := seedRecipe(t, repo, "Tacos", "Mexican", 20, 0)

	require.NoError(t, repo.IncrementUsage(ctx, r.ID))
	require.NoError(t, repo.IncrementUsage(ctx, r.ID))

	got, err := repo.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TimesUsed)
	assert.Equal(t, []string{"1 cup rice"}, got.Ingredients)

	err = repo.IncrementUsage(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestHouseholdRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewHouseholdRepository(setupTestDB(t))
	user := "user-1"

	h := &common.HouseholdProfile{
		UserID:         &user,
		Members:        []common.HouseholdMember{{Name: "Ana", IsAdult: true, DietaryRestrictions: []string{"vegetarian"}}},
		CookingSkill:   common.SkillBeginner,
		MaxCookingTime: 40,
	}
	require.NoError(t, repo.Create(ctx, h))
	require.NotEmpty(t, h.ID)

	got, err := repo.Get(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Members[0].Name)
	assert.Equal(t, []string{"vegetarian"}, got.DietaryRestrictions())

	byUser, err := repo.GetByUserID(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, h.ID, byUser.ID)

	got.MaxCookingTime = 25
	require.NoError(t, repo.Update(ctx, got))
	updated, err := repo.Get(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, updated.MaxCookingTime)

	list, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, h.ID))
	_, err = repo.Get(ctx, h.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGroceryRepository_UpsertKeepsOneRowPerMealPlan(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	plans := NewMealPlanRepository(db)
	repo := NewGroceryRepository(db)

	plan := &common.MealPlan{HouseholdID: "h1", WeekStartDate: "2026-10-19", GeneratedAt: time.Now()}
	require.NoError(t, plans.Create(ctx, plan))

	first := &common.GroceryList{MealPlanID: plan.ID, Items: map[string][]string{"meat": {"1 lb chicken"}}}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &common.GroceryList{MealPlanID: plan.ID, Items: map[string][]string{"dairy": {"2 cup milk"}}}
	require.NoError(t, repo.Upsert(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	got, err := repo.GetByMealPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"dairy": {"2 cup milk"}}, got.Items)

	var count int64
	require.NoError(t, db.Model(&GroceryListModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, plans.Delete(ctx, plan.ID))
	_, err = repo.Get(ctx, first.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSessionRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(setupTestDB(t))

	s := &common.ChatSession{
		Type:     common.SessionOnboarding,
		Messages: []common.ChatMessage{{Role: "assistant", Content: "Hi!"}},
	}
	require.NoError(t, repo.Create(ctx, s))

	s.Messages = append(s.Messages, common.ChatMessage{Role: "user", Content: "Two adults"})
	s.Completed = true
	s.ExtractedData = map[string]interface{}{"cooking_skill": "beginner"}
	require.NoError(t, repo.Update(ctx, s))

	got, err := repo.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Len(t, got.Messages, 2)
	assert.Equal(t, "beginner", got.ExtractedData["cooking_skill"])
}

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"meal-planner/internal/api/handlers"
	"meal-planner/internal/core/ai/provider/providertest"
	"meal-planner/internal/core/ai/service"
	"meal-planner/internal/core/chat"
	"meal-planner/internal/core/grocery"
	"meal-planner/internal/core/household"
	"meal-planner/internal/core/planner"
	"meal-planner/internal/core/recipe"
	"meal-planner/internal/infrastructure/cache"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/infrastructure/database"
	"meal-planner/internal/infrastructure/persistence"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pastaJSON = `{"name":"Weeknight Pasta","description":"Tomato pasta with garlic",
"prep_time":10,"cook_time":15,"servings":6,"difficulty":"beginner","cuisine":"Italian",
"ingredients":["1 lb spaghetti","2 cups marinara sauce","3 cloves garlic, minced","1 cup grated parmesan"],
"instructions":["Boil pasta","Warm sauce","Toss together"],"dietary_tags":["vegetarian"]}`

func newTestRouter(t *testing.T, mutate func(*config.Config), responses ...string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.App.Debug = false
	cfg.RateLimit.Enabled = false
	cfg.DedupWindow = -1
	cfg.Planner.SlotTimeout = 0
	cfg.Cache.CleanupInterval = time.Hour
	if mutate != nil {
		mutate(cfg)
	}

	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, persistence.Migrate(db, "sqlite"))
	t.Cleanup(func() { _ = database.Close(db) })
	sqlDB, err := db.DB()
	require.NoError(t, err)

	mem := cache.NewMemory(&cfg.Cache)
	t.Cleanup(func() { _ = mem.Close() })

	ai := service.NewService(providertest.New(responses...), 0)
	mealPlans := persistence.NewMealPlanRepository(db)
	households := household.NewService(persistence.NewHouseholdRepository(db))
	recipes := recipe.NewCache(persistence.NewRecipeRepository(db), ai)
	groceries := grocery.NewService(mealPlans, persistence.NewGroceryRepository(db), mem, time.Hour)

	return SetupRouter(cfg, &Dependencies{
		Households: households,
		Chat:       chat.NewService(ai, persistence.NewSessionRepository(db), households),
		Planner:    planner.NewService(households, recipes, mealPlans, groceries, cfg.Planner),
		Grocery:    groceries,
		Recipes:    recipes,
		DB:         sqlDB,
	})
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func TestHealthRoutes(t *testing.T) {
	r := newTestRouter(t, nil)

	for _, path := range []string{"/health", "/ready", "/live", "/metrics"} {
		w := do(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := do(t, r, http.MethodGet, "/ready", nil)
	var body map[string]interface{}
	decode(t, w, &body)
	assert.Equal(t, "ready", body["status"])
	assert.Equal(t, "ok", body["checks"].(map[string]interface{})["database"])
}

func TestErrorMapping(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodGet, "/api/v1/household/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	var e handlers.ErrorBody
	decode(t, w, &e)
	assert.Equal(t, common.ErrCodeNotFound, e.Code)

	w = do(t, r, http.MethodPost, "/api/v1/household", map[string]interface{}{"members": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	decode(t, w, &e)
	assert.Equal(t, common.ErrCodeValidation, e.Code)

	w = do(t, r, http.MethodPost, "/api/v1/recipes/resolve", map[string]interface{}{"meal_type": "dinner"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	decode(t, w, &e)
	assert.Contains(t, e.Error, "cuisine is required")

	w = do(t, r, http.MethodGet, "/api/v1/household?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/meal-plans/generate", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMealPlanToGroceryList(t *testing.T) {
	r := newTestRouter(t, nil, pastaJSON)

	w := do(t, r, http.MethodPost, "/api/v1/household", map[string]interface{}{
		"members":           []map[string]interface{}{{"name": "Ana", "is_adult": true}, {"name": "Ben", "is_adult": true}},
		"favorite_cuisines": []string{"Italian"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var h common.HouseholdProfile
	decode(t, w, &h)
	require.NotEmpty(t, h.ID)

	w = do(t, r, http.MethodPost, "/api/v1/meal-plans/generate", map[string]interface{}{
		"household_id": h.ID,
		"constraints": map[string]interface{}{
			"Wednesday": map[string]string{"portions": "none", "notes": "eating out"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var plan common.MealPlan
	decode(t, w, &plan)
	require.Len(t, plan.Meals, 7)
	assert.Equal(t, common.SlotDiningOut, plan.Meals["wednesday"].Kind)
	assert.Equal(t, common.SlotRecipe, plan.Meals["monday"].Kind)
	require.NotNil(t, plan.Meals["monday"].Recipe)
	assert.Equal(t, "Weeknight Pasta", plan.Meals["monday"].Recipe.Name)

	w = do(t, r, http.MethodGet, "/api/v1/meal-plans/household/"+h.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Count int `json:"count"`
	}
	decode(t, w, &listed)
	assert.Equal(t, 1, listed.Count)

	w = do(t, r, http.MethodPost, "/api/v1/grocery/generate/"+plan.ID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var list common.GroceryList
	decode(t, w, &list)
	assert.Equal(t, plan.ID, list.MealPlanID)
	assert.NotEmpty(t, list.Items)

	w = do(t, r, http.MethodPost, "/api/v1/grocery/generate/"+plan.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var again common.GroceryList
	decode(t, w, &again)
	assert.Equal(t, list.ID, again.ID)
	assert.Equal(t, list.Items, again.Items)

	w = do(t, r, http.MethodGet, "/api/v1/grocery/meal-plan/"+plan.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodDelete, "/api/v1/meal-plans/"+plan.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, r, http.MethodGet, "/api/v1/meal-plans/"+plan.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecipeResolveAndGet(t *testing.T) {
	r := newTestRouter(t, nil, pastaJSON)

	w := do(t, r, http.MethodPost, "/api/v1/recipes/resolve", map[string]interface{}{
		"cuisine": "Italian", "servings": 4,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got common.Recipe
	decode(t, w, &got)
	assert.Equal(t, "Weeknight Pasta", got.Name)

	w = do(t, r, http.MethodGet, "/api/v1/recipes/"+got.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecipeAdapt(t *testing.T) {
	forTwo := `{"name":"Weeknight Pasta for Two","prep_time":10,"cook_time":15,"servings":2,
"cuisine":"Italian","ingredients":["1/3 lb spaghetti","2/3 cup marinara sauce"],
"instructions":["Boil pasta","Toss with sauce"],"adaptation_notes":"Scaled to two servings"}`
	r := newTestRouter(t, nil, pastaJSON, forTwo)

	w := do(t, r, http.MethodPost, "/api/v1/recipes/resolve", map[string]interface{}{"cuisine": "Italian"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var original common.Recipe
	decode(t, w, &original)

	w = do(t, r, http.MethodPost, "/api/v1/recipes/adapt", map[string]interface{}{
		"recipe_id":               original.ID,
		"adaptation_requirements": map[string]interface{}{"servings": 2},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var adapted struct {
		Recipe          common.Recipe `json:"recipe"`
		AdaptedFrom     string        `json:"adapted_from"`
		AdaptationNotes string        `json:"adaptation_notes"`
	}
	decode(t, w, &adapted)
	assert.Equal(t, original.ID, adapted.AdaptedFrom)
	assert.Equal(t, "Scaled to two servings", adapted.AdaptationNotes)
	assert.Equal(t, 2, adapted.Recipe.Servings)
	assert.Equal(t, recipe.AdaptedSource, adapted.Recipe.Source)

	w = do(t, r, http.MethodGet, "/api/v1/recipes/"+adapted.Recipe.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/recipes/adapt", map[string]interface{}{"recipe_id": original.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/recipes/adapt", map[string]interface{}{
		"recipe_id":               "missing",
		"adaptation_requirements": map[string]interface{}{"servings": 2},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatRoutes(t *testing.T) {
	r := newTestRouter(t, nil, `{"message": "How many people live with you?", "completed": false}`)

	w := do(t, r, http.MethodPost, "/api/v1/chat/onboarding/start", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var start chat.Response
	decode(t, w, &start)
	require.NotEmpty(t, start.SessionID)

	w = do(t, r, http.MethodPost, "/api/v1/chat/onboarding/"+start.SessionID, map[string]string{"message": "Hi, I'm Ana"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var reply chat.Response
	decode(t, w, &reply)
	assert.Equal(t, "How many people live with you?", reply.Message)
	assert.False(t, reply.Completed)

	w = do(t, r, http.MethodPost, "/api/v1/chat/onboarding/"+start.SessionID, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/chat/weekly-planning/start", map[string]string{"household_id": "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRateLimit(t *testing.T) {
	r := newTestRouter(t, func(cfg *config.Config) {
		cfg.RateLimit.Enabled = true
		cfg.RateLimit.Requests = 2
		cfg.RateLimit.Window = time.Hour
	})

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/api/v1/household", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/api/v1/household", nil).Code)
	w := do(t, r, http.MethodGet, "/api/v1/household", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// 健康檢查不受限流影響
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/live", nil).Code)
}

func TestDeduplication(t *testing.T) {
	r := newTestRouter(t, func(cfg *config.Config) {
		cfg.DedupWindow = time.Minute
	})

	body := map[string]interface{}{"members": []map[string]string{{"name": "Kai"}}}
	assert.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/api/v1/household", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, r, http.MethodPost, "/api/v1/household", body).Code)
}

package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"meal-planner/internal/core/ai/service"
	"meal-planner/internal/infrastructure/metrics"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// 食譜來源標記
const (
	GeneratedSource = "recipe_agent_developed"
	AdaptedSource   = "recipe_agent_adapted"
)

// Cache 食譜快取：先查已儲存的食譜，沒有才請 AI 生成
// --------------------------------------------------
type Cache struct {
	store Store
	ai    *service.Service
	now   func() time.Time
}

// NewCache 創建食譜快取
func NewCache(store Store, ai *service.Service) *Cache {
	return &Cache{
		store: store,
		ai:    ai,
		now:   time.Now,
	}
}

// Resolve 取得符合需求的食譜；命中時回傳最常用的一筆，未命中則生成並儲存
func (c *Cache) Resolve(ctx context.Context, req Requirements) (*common.Recipe, error) {
	req.normalize()

	candidates, err := c.store.FindCandidates(ctx, req.query())
	switch {
	case err != nil:
		metrics.RecipeCacheLookups.WithLabelValues("error").Inc()
		common.LogWarn("食譜查詢失敗，改為生成",
			zap.String("cuisine", req.Cuisine),
			zap.Error(err),
		)
	case len(candidates) > 0:
		hit := candidates[0]
		metrics.RecipeCacheLookups.WithLabelValues("hit").Inc()
		common.LogCacheHit("recipe", hit.ID)

		if err := c.store.IncrementUsage(ctx, hit.ID); err != nil {
			common.LogWarn("食譜使用次數更新失敗",
				zap.String("recipe_id", hit.ID),
				zap.Error(err),
			)
		}
		return &hit, nil
	default:
		metrics.RecipeCacheLookups.WithLabelValues("miss").Inc()
		common.LogCacheMiss("recipe", req.Cuisine+"/"+req.MealType)
	}

	return c.generate(ctx, req)
}

// Get 以 ID 取得食譜
func (c *Cache) Get(ctx context.Context, id string) (*common.Recipe, error) {
	return c.store.Get(ctx, id)
}

// Develop 不查快取直接生成並儲存一份新食譜，用於預先填充
func (c *Cache) Develop(ctx context.Context, req Requirements) (*common.Recipe, error) {
	req.normalize()
	return c.generate(ctx, req)
}

// Adapt 依改編需求改寫已儲存的食譜，結果另存為新食譜，原食譜不變
func (c *Cache) Adapt(ctx context.Context, recipeID string, a Adaptation) (*Adapted, error) {
	if a.isEmpty() {
		return nil, common.NewValidationError("at least one adaptation requirement is required")
	}

	original, err := c.store.Get(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	var out adaptedRecipe
	err = c.ai.GenerateJSON(ctx, "recipe_adaptation", adaptationSystemPrompt, buildAdaptationPrompt(original, a), &out)
	if err == nil {
		err = out.validate()
	}
	if err != nil {
		recordGeneration(err)
		return nil, err
	}
	metrics.RecipeGenerations.WithLabelValues("success").Inc()

	req := a.requirements(original)
	recipe := out.toRecipe(req)
	recipe.Source = AdaptedSource
	c.save(ctx, recipe)

	common.LogInfo("食譜已改編",
		zap.String("recipe_id", recipe.ID),
		zap.String("adapted_from", original.ID),
		zap.Int("servings", recipe.Servings),
	)
	return &Adapted{
		Recipe:          recipe,
		AdaptedFrom:     original.ID,
		AdaptationNotes: strings.TrimSpace(string(out.AdaptationNotes)),
	}, nil
}

func (c *Cache) generate(ctx context.Context, req Requirements) (*common.Recipe, error) {
	var out generatedRecipe
	err := c.ai.GenerateJSON(ctx, "recipe", recipeSystemPrompt, buildRecipePrompt(req), &out)
	if err == nil {
		err = out.validate()
	}
	if err != nil {
		recordGeneration(err)
		return nil, err
	}
	metrics.RecipeGenerations.WithLabelValues("success").Inc()

	recipe := out.toRecipe(req)
	c.save(ctx, recipe)

	common.LogInfo("新食譜已生成",
		zap.String("recipe_id", recipe.ID),
		zap.String("name", recipe.Name),
		zap.String("cuisine", recipe.Cuisine),
		zap.Int("total_time", recipe.TotalTime),
	)
	return recipe, nil
}

// save 補上 ID 與索引後寫入；寫入失敗時食譜仍然可用，只是之後無法重用
func (c *Cache) save(ctx context.Context, recipe *common.Recipe) {
	recipe.ID = common.GenerateUUID()
	recipe.CreatedAt = c.now().UTC()
	Derive(recipe)

	if err := c.store.Create(ctx, recipe); err != nil {
		common.LogError("食譜儲存失敗",
			zap.String("recipe_id", recipe.ID),
			zap.String("name", recipe.Name),
			zap.Error(err),
		)
	}
}

func recordGeneration(err error) {
	outcome := "error"
	if errors.Is(err, common.ErrParseFailure) {
		outcome = "parse_failure"
	}
	metrics.RecipeGenerations.WithLabelValues(outcome).Inc()
}

// generatedRecipe AI 回應的食譜格式；數字欄位可能是字串
type generatedRecipe struct {
	Name            common.FlexString   `json:"name"`
	Description     common.FlexString   `json:"description"`
	PrepTime        common.FlexInt      `json:"prep_time"`
	CookTime        common.FlexInt      `json:"cook_time"`
	Servings        common.FlexInt      `json:"servings"`
	Difficulty      common.FlexString   `json:"difficulty"`
	Cuisine         common.FlexString   `json:"cuisine"`
	Ingredients     []common.FlexString `json:"ingredients"`
	Instructions    []common.FlexString `json:"instructions"`
	EquipmentNeeded []common.FlexString `json:"equipment_needed"`
	DietaryTags     []common.FlexString `json:"dietary_tags"`
	Tips            []common.FlexString `json:"tips"`
	Nutrition       struct {
		Calories common.FlexString `json:"calories"`
		Protein  common.FlexString `json:"protein"`
		Carbs    common.FlexString `json:"carbs"`
		Fat      common.FlexString `json:"fat"`
	} `json:"nutrition_per_serving"`
}

func (g *generatedRecipe) validate() error {
	if strings.TrimSpace(string(g.Name)) == "" {
		return common.Wrap(common.ErrParseFailure, fmt.Errorf("generated recipe has no name"))
	}
	if len(flexStrings(g.Ingredients)) == 0 {
		return common.Wrap(common.ErrParseFailure, fmt.Errorf("generated recipe %q has no ingredients", g.Name))
	}
	return nil
}

// toRecipe 轉成領域型別；AI 未提供的欄位以需求補上
func (g *generatedRecipe) toRecipe(req Requirements) *common.Recipe {
	r := &common.Recipe{
		Name:            strings.TrimSpace(string(g.Name)),
		Description:     strings.TrimSpace(string(g.Description)),
		PrepTime:        nonNegative(int(g.PrepTime)),
		CookTime:        nonNegative(int(g.CookTime)),
		Servings:        int(g.Servings),
		Difficulty:      strings.ToLower(strings.TrimSpace(string(g.Difficulty))),
		Cuisine:         strings.TrimSpace(string(g.Cuisine)),
		MealType:        req.MealType,
		Ingredients:     flexStrings(g.Ingredients),
		Instructions:    flexStrings(g.Instructions),
		EquipmentNeeded: flexStrings(g.EquipmentNeeded),
		DietaryTags:     flexStrings(g.DietaryTags),
		Tips:            flexStrings(g.Tips),
		Nutrition: common.Nutrition{
			Calories: string(g.Nutrition.Calories),
			Protein:  string(g.Nutrition.Protein),
			Carbs:    string(g.Nutrition.Carbs),
			Fat:      string(g.Nutrition.Fat),
		},
		Source: GeneratedSource,
	}

	if r.Servings <= 0 {
		r.Servings = req.Servings
	}
	// 菜系須包含查詢字串，之後才查得到
	if !strings.Contains(strings.ToLower(r.Cuisine), strings.ToLower(req.Cuisine)) {
		r.Cuisine = req.Cuisine
	}
	if r.Difficulty == "" {
		r.Difficulty = req.SkillLevel
	}
	return r
}

func flexStrings(in []common.FlexString) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if v := strings.TrimSpace(string(s)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

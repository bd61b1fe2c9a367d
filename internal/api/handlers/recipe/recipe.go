package recipe

import (
	"context"
	"net/http"

	"meal-planner/internal/api/handlers"
	recipesvc "meal-planner/internal/core/recipe"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Resolver 食譜快取
type Resolver interface {
	Resolve(ctx context.Context, req recipesvc.Requirements) (*common.Recipe, error)
	Get(ctx context.Context, id string) (*common.Recipe, error)
	Adapt(ctx context.Context, recipeID string, a recipesvc.Adaptation) (*recipesvc.Adapted, error)
}

// HouseholdReader 讀取家庭檔案，用於補充個人化資訊
type HouseholdReader interface {
	Get(ctx context.Context, id string) (*common.HouseholdProfile, error)
}

// ResolveRequest 食譜需求；帶 household_id 時附上家庭資訊
type ResolveRequest struct {
	recipesvc.Requirements
	HouseholdID string `json:"household_id"`
}

// AdaptRequest 改編既有食譜
type AdaptRequest struct {
	RecipeID    string               `json:"recipe_id" validate:"required"`
	Adaptation  recipesvc.Adaptation `json:"adaptation_requirements"`
	HouseholdID string               `json:"household_id"`
}

// Handler 食譜處理器
type Handler struct {
	recipes    Resolver
	households HouseholdReader
}

// NewHandler 創建食譜處理器；households 可為 nil
func NewHandler(recipes Resolver, households HouseholdReader) *Handler {
	return &Handler{recipes: recipes, households: households}
}

// Register 註冊路由
func (h *Handler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/recipes")
	g.POST("/resolve", h.Resolve)
	g.POST("/adapt", h.Adapt)
	g.GET("/:id", h.Get)
}

// Resolve 先查快取，沒有符合的才生成
func (h *Handler) Resolve(c *gin.Context) {
	var req ResolveRequest
	if err := handlers.BindAndValidate(c, &req); err != nil {
		handlers.RespondError(c, err)
		return
	}

	profile, err := h.household(c, req.HouseholdID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	req.Requirements.Household = profile

	r, err := h.recipes.Resolve(c.Request.Context(), req.Requirements)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Adapt 改編已儲存的食譜，回傳新存的食譜
func (h *Handler) Adapt(c *gin.Context) {
	var req AdaptRequest
	if err := handlers.BindAndValidate(c, &req); err != nil {
		handlers.RespondError(c, err)
		return
	}

	profile, err := h.household(c, req.HouseholdID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	req.Adaptation.Household = profile

	adapted, err := h.recipes.Adapt(c.Request.Context(), req.RecipeID, req.Adaptation)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, adapted)
}

func (h *Handler) household(c *gin.Context, id string) (*common.HouseholdProfile, error) {
	if id == "" || h.households == nil {
		return nil, nil
	}
	return h.households.Get(c.Request.Context(), id)
}

// Get 取得已儲存的食譜
func (h *Handler) Get(c *gin.Context) {
	r, err := h.recipes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

package grocery

import (
	"context"
	"net/http"

	"meal-planner/internal/api/handlers"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Service 購物清單服務
type Service interface {
	Generate(ctx context.Context, mealPlanID string) (*common.GroceryList, error)
	Get(ctx context.Context, id string) (*common.GroceryList, error)
	GetByMealPlan(ctx context.Context, mealPlanID string) (*common.GroceryList, error)
	Delete(ctx context.Context, id string) error
}

// Handler 購物清單處理器
type Handler struct {
	svc Service
}

// NewHandler 創建購物清單處理器
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Register 註冊路由
func (h *Handler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/grocery")
	g.POST("/generate/:mealPlanId", h.Generate)
	g.GET("/meal-plan/:mealPlanId", h.GetByMealPlan)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Delete)
}

// Generate 為菜單產生購物清單，重複呼叫得到相同結果
func (h *Handler) Generate(c *gin.Context) {
	list, err := h.svc.Generate(c.Request.Context(), c.Param("mealPlanId"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get 取得購物清單
func (h *Handler) Get(c *gin.Context) {
	list, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetByMealPlan 取得菜單的購物清單
func (h *Handler) GetByMealPlan(c *gin.Context) {
	list, err := h.svc.GetByMealPlan(c.Request.Context(), c.Param("mealPlanId"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Delete 刪除購物清單
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package mealplan

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"meal-planner/internal/api/handlers"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Planner 一週菜單服務
type Planner interface {
	Generate(ctx context.Context, householdID string, constraints common.WeeklyConstraints) (*common.MealPlan, error)
	Get(ctx context.Context, id string) (*common.MealPlan, error)
	ListByHousehold(ctx context.Context, householdID string, limit int) ([]common.MealPlan, error)
	Delete(ctx context.Context, id string) error
}

// ConstraintSource 從已完成的每週規劃對話取得限制
type ConstraintSource interface {
	Constraints(ctx context.Context, sessionID string) (string, common.WeeklyConstraints, error)
}

// GenerateRequest 產生菜單請求；帶 session_id 時以對話抽取的限制為準
type GenerateRequest struct {
	HouseholdID string                   `json:"household_id"`
	SessionID   string                   `json:"session_id"`
	Constraints common.WeeklyConstraints `json:"constraints"`
}

// Handler 菜單處理器
type Handler struct {
	planner  Planner
	sessions ConstraintSource
}

// NewHandler 創建菜單處理器；sessions 可為 nil
func NewHandler(planner Planner, sessions ConstraintSource) *Handler {
	return &Handler{planner: planner, sessions: sessions}
}

// Register 註冊路由
func (h *Handler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/meal-plans")
	g.POST("/generate", h.Generate)
	g.GET("/household/:id", h.ListByHousehold)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Delete)
}

// Generate 產生一週菜單
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := handlers.BindJSON(c, &req); err != nil {
		handlers.RespondError(c, err)
		return
	}

	householdID, constraints, err := h.resolve(c.Request.Context(), req)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	plan, err := h.planner.Generate(c.Request.Context(), householdID, constraints)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// resolve 決定家庭與每日限制
func (h *Handler) resolve(ctx context.Context, req GenerateRequest) (string, common.WeeklyConstraints, error) {
	householdID := strings.TrimSpace(req.HouseholdID)
	if req.SessionID == "" {
		if householdID == "" {
			return "", nil, common.NewValidationError("household_id or session_id is required")
		}
		return householdID, normalizeConstraints(req.Constraints), nil
	}

	if h.sessions == nil {
		return "", nil, common.NewValidationError("session_id is not supported")
	}
	sessionHousehold, constraints, err := h.sessions.Constraints(ctx, req.SessionID)
	if err != nil {
		return "", nil, err
	}
	if householdID != "" && householdID != sessionHousehold {
		return "", nil, common.NewValidationError(fmt.Sprintf("session %s belongs to another household", req.SessionID))
	}
	return sessionHousehold, constraints, nil
}

// normalizeConstraints 星期與值一律小寫
func normalizeConstraints(in common.WeeklyConstraints) common.WeeklyConstraints {
	if in == nil {
		return nil
	}
	out := make(common.WeeklyConstraints, len(in))
	for day, c := range in {
		c.Portions = common.Portions(strings.ToLower(strings.TrimSpace(string(c.Portions))))
		c.Complexity = common.Complexity(strings.ToLower(strings.TrimSpace(string(c.Complexity))))
		out[strings.ToLower(strings.TrimSpace(day))] = c
	}
	return out
}

// Get 取得菜單
func (h *Handler) Get(c *gin.Context) {
	plan, err := h.planner.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// ListByHousehold 列出家庭最近的菜單
func (h *Handler) ListByHousehold(c *gin.Context) {
	limit, err := handlers.QueryInt(c, "limit", 10)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	plans, err := h.planner.ListByHousehold(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal_plans": plans, "count": len(plans)})
}

// Delete 刪除菜單
func (h *Handler) Delete(c *gin.Context) {
	if err := h.planner.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

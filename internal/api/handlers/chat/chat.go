package chat

import (
	"context"
	"net/http"

	"meal-planner/internal/api/handlers"
	chatsvc "meal-planner/internal/core/chat"

	"github.com/gin-gonic/gin"
)

// Service 對話服務
type Service interface {
	StartOnboarding(ctx context.Context) (*chatsvc.Response, error)
	ContinueOnboarding(ctx context.Context, sessionID, message, userID string) (*chatsvc.Response, error)
	StartWeeklyPlanning(ctx context.Context, householdID string) (*chatsvc.Response, error)
	ContinueWeeklyPlanning(ctx context.Context, sessionID, message string) (*chatsvc.Response, error)
}

// MessageRequest 使用者訊息
type MessageRequest struct {
	Message string `json:"message" validate:"required"`
	UserID  string `json:"user_id"`
}

// WeeklyPlanningRequest 開始每週規劃
type WeeklyPlanningRequest struct {
	HouseholdID string `json:"household_id" validate:"required"`
}

// Handler 對話處理器
type Handler struct {
	svc Service
}

// NewHandler 創建對話處理器
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Register 註冊路由
func (h *Handler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/chat")
	g.POST("/onboarding/start", h.StartOnboarding)
	g.POST("/onboarding/:sessionId", h.ContinueOnboarding)
	g.POST("/weekly-planning/start", h.StartWeeklyPlanning)
	g.POST("/weekly-planning/:sessionId", h.ContinueWeeklyPlanning)
}

// StartOnboarding 開始入門對話
func (h *Handler) StartOnboarding(c *gin.Context) {
	resp, err := h.svc.StartOnboarding(c.Request.Context())
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ContinueOnboarding 送出入門對話訊息
func (h *Handler) ContinueOnboarding(c *gin.Context) {
	var req MessageRequest
	if err := handlers.BindAndValidate(c, &req); err != nil {
		handlers.RespondError(c, err)
		return
	}
	resp, err := h.svc.ContinueOnboarding(c.Request.Context(), c.Param("sessionId"), req.Message, req.UserID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StartWeeklyPlanning 開始每週規劃對話
func (h *Handler) StartWeeklyPlanning(c *gin.Context) {
	var req WeeklyPlanningRequest
	if err := handlers.BindAndValidate(c, &req); err != nil {
		handlers.RespondError(c, err)
		return
	}
	resp, err := h.svc.StartWeeklyPlanning(c.Request.Context(), req.HouseholdID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ContinueWeeklyPlanning 送出每週規劃訊息
func (h *Handler) ContinueWeeklyPlanning(c *gin.Context) {
	var req MessageRequest
	if err := handlers.BindAndValidate(c, &req); err != nil {
		handlers.RespondError(c, err)
		return
	}
	resp, err := h.svc.ContinueWeeklyPlanning(c.Request.Context(), c.Param("sessionId"), req.Message)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

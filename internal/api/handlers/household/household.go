package household

import (
	"context"
	"net/http"

	"meal-planner/internal/api/handlers"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Service 家庭檔案服務
type Service interface {
	Create(ctx context.Context, h *common.HouseholdProfile) (*common.HouseholdProfile, error)
	Get(ctx context.Context, id string) (*common.HouseholdProfile, error)
	GetByUser(ctx context.Context, userID string) (*common.HouseholdProfile, error)
	Update(ctx context.Context, id string, h *common.HouseholdProfile) (*common.HouseholdProfile, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]common.HouseholdProfile, error)
}

// Handler 家庭檔案處理器
type Handler struct {
	svc Service
}

// NewHandler 創建家庭檔案處理器
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Register 註冊路由
func (h *Handler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/household")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/by-user/:userId", h.GetByUser)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// Create 新增家庭檔案
func (h *Handler) Create(c *gin.Context) {
	var profile common.HouseholdProfile
	if err := handlers.BindJSON(c, &profile); err != nil {
		handlers.RespondError(c, err)
		return
	}
	created, err := h.svc.Create(c.Request.Context(), &profile)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List 分頁列出家庭檔案
func (h *Handler) List(c *gin.Context) {
	limit, err := handlers.QueryInt(c, "limit", 20)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	offset, err := handlers.QueryInt(c, "offset", 0)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	list, err := h.svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"households": list, "count": len(list)})
}

// Get 取得家庭檔案
func (h *Handler) Get(c *gin.Context) {
	profile, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetByUser 依使用者取得家庭檔案
func (h *Handler) GetByUser(c *gin.Context) {
	profile, err := h.svc.GetByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Update 更新家庭檔案
func (h *Handler) Update(c *gin.Context) {
	var profile common.HouseholdProfile
	if err := handlers.BindJSON(c, &profile); err != nil {
		handlers.RespondError(c, err)
		return
	}
	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), &profile)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete 刪除家庭檔案
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

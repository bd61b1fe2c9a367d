package household

import (
	"context"
	"strings"

	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// Store 家庭檔案儲存
type Store interface {
	Create(ctx context.Context, h *common.HouseholdProfile) error
	Get(ctx context.Context, id string) (*common.HouseholdProfile, error)
	GetByUserID(ctx context.Context, userID string) (*common.HouseholdProfile, error)
	Update(ctx context.Context, h *common.HouseholdProfile) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]common.HouseholdProfile, error)
}

// Service 家庭檔案服務
type Service struct {
	store Store
}

// NewService 創建家庭檔案服務
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create 補預設值、驗證後新增
func (s *Service) Create(ctx context.Context, h *common.HouseholdProfile) (*common.HouseholdProfile, error) {
	prepare(h)
	if err := common.ValidateStruct(h); err != nil {
		return nil, err
	}
	h.ID = ""
	if err := s.store.Create(ctx, h); err != nil {
		return nil, err
	}
	common.LogInfo("家庭檔案已建立",
		zap.String("household_id", h.ID),
		zap.Int("members", h.Size()),
	)
	return h, nil
}

// Get 取得家庭檔案
func (s *Service) Get(ctx context.Context, id string) (*common.HouseholdProfile, error) {
	return s.store.Get(ctx, id)
}

// GetByUser 取得使用者最新的家庭檔案
func (s *Service) GetByUser(ctx context.Context, userID string) (*common.HouseholdProfile, error) {
	return s.store.GetByUserID(ctx, userID)
}

// Update 覆寫家庭檔案，ID 不變
func (s *Service) Update(ctx context.Context, id string, h *common.HouseholdProfile) (*common.HouseholdProfile, error) {
	prepare(h)
	if err := common.ValidateStruct(h); err != nil {
		return nil, err
	}
	h.ID = id
	if err := s.store.Update(ctx, h); err != nil {
		return nil, err
	}
	common.LogInfo("家庭檔案已更新", zap.String("household_id", id))
	return h, nil
}

// Delete 刪除家庭檔案
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	common.LogInfo("家庭檔案已刪除", zap.String("household_id", id))
	return nil
}

// List 分頁列出
func (s *Service) List(ctx context.Context, limit, offset int) ([]common.HouseholdProfile, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.List(ctx, limit, offset)
}

// prepare 補預設值並清理清單欄位
func prepare(h *common.HouseholdProfile) {
	h.ApplyDefaults()
	h.CookingSkill = common.CookingSkill(strings.ToLower(string(h.CookingSkill)))
	h.FavoriteCuisines = cleanList(h.FavoriteCuisines)
	h.Dislikes = cleanList(h.Dislikes)
	h.KitchenEquipment = cleanList(h.KitchenEquipment)
	for i := range h.Members {
		h.Members[i].Name = strings.TrimSpace(h.Members[i].Name)
		h.Members[i].DietaryRestrictions = cleanList(h.Members[i].DietaryRestrictions)
		if a := h.Members[i].Age; a != nil && *a >= 18 {
			h.Members[i].IsAdult = true
		}
	}
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

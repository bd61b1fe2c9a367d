package persistence

import (
	"context"
	"fmt"
	"time"

	"meal-planner/internal/pkg/common"

	"gorm.io/gorm"
)

// HouseholdRepository 家庭檔案儲存
type HouseholdRepository struct {
	db *gorm.DB
}

// NewHouseholdRepository 建立家庭檔案儲存
func NewHouseholdRepository(db *gorm.DB) *HouseholdRepository {
	return &HouseholdRepository{db: db}
}

// Create 新增家庭
func (r *HouseholdRepository) Create(ctx context.Context, h *common.HouseholdProfile) error {
	if h.ID == "" {
		h.ID = common.GenerateUUID()
	}
	now := time.Now().UTC()
	h.CreatedAt, h.UpdatedAt = now, now
	if err := r.db.WithContext(ctx).Create(householdToModel(h)).Error; err != nil {
		return fmt.Errorf("failed to insert household: %w", err)
	}
	return nil
}

// Get 取得家庭
func (r *HouseholdRepository) Get(ctx context.Context, id string) (*common.HouseholdProfile, error) {
	var m HouseholdModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "household", id)
	}
	return householdFromModel(&m), nil
}

// GetByUserID 以使用者 ID 取得最新的家庭
func (r *HouseholdRepository) GetByUserID(ctx context.Context, userID string) (*common.HouseholdProfile, error) {
	var m HouseholdModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		return nil, notFoundOr(err, "household for user", userID)
	}
	return householdFromModel(&m), nil
}

// Update 更新家庭，保留建立時間
func (r *HouseholdRepository) Update(ctx context.Context, h *common.HouseholdProfile) error {
	existing, err := r.Get(ctx, h.ID)
	if err != nil {
		return err
	}
	h.CreatedAt = existing.CreatedAt
	h.UpdatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Save(householdToModel(h)).Error; err != nil {
		return fmt.Errorf("failed to update household: %w", err)
	}
	return nil
}

// Delete 刪除家庭
func (r *HouseholdRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&HouseholdModel{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete household: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.Wrap(common.ErrNotFound, fmt.Errorf("household %s", id))
	}
	return nil
}

// List 分頁列出家庭
func (r *HouseholdRepository) List(ctx context.Context, limit, offset int) ([]common.HouseholdProfile, error) {
	var rows []HouseholdModel
	tx := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if offset > 0 {
		tx = tx.Offset(offset)
	}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list households: %w", err)
	}
	out := make([]common.HouseholdProfile, 0, len(rows))
	for i := range rows {
		out = append(out, *householdFromModel(&rows[i]))
	}
	return out, nil
}

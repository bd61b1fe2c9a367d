package persistence

import (
	"context"
	"fmt"
	"time"

	"meal-planner/internal/pkg/common"

	"gorm.io/gorm"
)

// SessionRepository 對話階段儲存
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository 建立對話階段儲存
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create 新增對話階段
func (r *SessionRepository) Create(ctx context.Context, s *common.ChatSession) error {
	if s.ID == "" {
		s.ID = common.GenerateUUID()
	}
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	if err := r.db.WithContext(ctx).Create(sessionToModel(s)).Error; err != nil {
		return fmt.Errorf("failed to insert chat session: %w", err)
	}
	return nil
}

// Get 取得對話階段
func (r *SessionRepository) Get(ctx context.Context, id string) (*common.ChatSession, error) {
	var m ChatSessionModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "chat session", id)
	}
	return sessionFromModel(&m), nil
}

// Update 覆寫對話階段
func (r *SessionRepository) Update(ctx context.Context, s *common.ChatSession) error {
	s.UpdatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Save(sessionToModel(s)).Error; err != nil {
		return fmt.Errorf("failed to update chat session: %w", err)
	}
	return nil
}

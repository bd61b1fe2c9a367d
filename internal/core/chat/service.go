package chat

import (
	"context"
	"fmt"
	"strings"

	"meal-planner/internal/core/ai/provider"
	"meal-planner/internal/core/ai/service"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// SessionStore 對話階段儲存
type SessionStore interface {
	Create(ctx context.Context, s *common.ChatSession) error
	Get(ctx context.Context, id string) (*common.ChatSession, error)
	Update(ctx context.Context, s *common.ChatSession) error
}

// Households 建立與讀取家庭檔案
type Households interface {
	Create(ctx context.Context, h *common.HouseholdProfile) (*common.HouseholdProfile, error)
	Get(ctx context.Context, id string) (*common.HouseholdProfile, error)
}

// Response 對話回應
type Response struct {
	Message       string                 `json:"message"`
	SessionID     string                 `json:"session_id"`
	Completed     bool                   `json:"completed"`
	ExtractedData map[string]interface{} `json:"extracted_data,omitempty"`
}

// Service 對話服務
// --------------------------------------------------
type Service struct {
	ai         *service.Service
	sessions   SessionStore
	households Households
}

// NewService 創建對話服務
func NewService(ai *service.Service, sessions SessionStore, households Households) *Service {
	return &Service{ai: ai, sessions: sessions, households: households}
}

// StartOnboarding 開始新的入門對話
func (s *Service) StartOnboarding(ctx context.Context) (*Response, error) {
	session := &common.ChatSession{
		Type:     common.SessionOnboarding,
		Messages: []common.ChatMessage{{Role: provider.RoleAssistant, Content: onboardingWelcome}},
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	common.LogInfo("入門對話開始", zap.String("session_id", session.ID))
	return &Response{Message: onboardingWelcome, SessionID: session.ID}, nil
}

// StartWeeklyPlanning 為既有家庭開始本週規劃對話
func (s *Service) StartWeeklyPlanning(ctx context.Context, householdID string) (*Response, error) {
	if strings.TrimSpace(householdID) == "" {
		return nil, common.NewValidationError("household_id is required")
	}
	if _, err := s.households.Get(ctx, householdID); err != nil {
		return nil, err
	}

	session := &common.ChatSession{
		Type:        common.SessionWeeklyPlanning,
		HouseholdID: &householdID,
		Messages:    []common.ChatMessage{{Role: provider.RoleAssistant, Content: weeklyPlanningWelcome}},
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	common.LogInfo("每週規劃對話開始",
		zap.String("session_id", session.ID),
		zap.String("household_id", householdID),
	)
	return &Response{Message: weeklyPlanningWelcome, SessionID: session.ID}, nil
}

// ContinueOnboarding 處理使用者訊息；完成時抽取資料並建立家庭檔案
func (s *Service) ContinueOnboarding(ctx context.Context, sessionID, message, userID string) (*Response, error) {
	session, reply, err := s.exchange(ctx, sessionID, common.SessionOnboarding, message,
		onboardingSystemPrompt, MarkerProfileComplete)
	if err != nil {
		return nil, err
	}

	if reply.Completed {
		profile, err := s.extractProfile(ctx, session, reply)
		if err != nil {
			return nil, err
		}
		if userID != "" {
			profile.UserID = &userID
		}
		created, err := s.households.Create(ctx, profile)
		if err != nil {
			common.LogError("入門完成但家庭檔案建立失敗",
				zap.String("session_id", session.ID),
				zap.Error(err),
			)
			return nil, err
		}
		session.HouseholdID = &created.ID
		session.ExtractedData = toMap(created)
	}

	return s.finish(ctx, session, reply)
}

// ContinueWeeklyPlanning 處理使用者訊息；完成時抽取每日限制
func (s *Service) ContinueWeeklyPlanning(ctx context.Context, sessionID, message string) (*Response, error) {
	session, reply, err := s.exchange(ctx, sessionID, common.SessionWeeklyPlanning, message,
		weeklyPlanningSystemPrompt, MarkerWeekUnderstood, MarkerScheduleComplete)
	if err != nil {
		return nil, err
	}

	if reply.Completed {
		constraints, err := s.extractConstraints(ctx, session, reply)
		if err != nil {
			return nil, err
		}
		session.ExtractedData = toMap(constraints)
	}

	return s.finish(ctx, session, reply)
}

// Constraints 取得已完成規劃對話的每日限制
func (s *Service) Constraints(ctx context.Context, sessionID string) (string, common.WeeklyConstraints, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", nil, err
	}
	if session.Type != common.SessionWeeklyPlanning || !session.Completed || session.HouseholdID == nil {
		return "", nil, common.Wrap(common.ErrConflict, fmt.Errorf("session %s is not a completed weekly planning session", sessionID))
	}
	raw, err := common.ToJSON(session.ExtractedData)
	if err != nil {
		return "", nil, err
	}
	constraints, err := decodeConstraints(raw)
	if err != nil {
		return "", nil, err
	}
	return *session.HouseholdID, constraints, nil
}

// exchange 載入對話、加入使用者訊息並取得助理回覆
func (s *Service) exchange(ctx context.Context, sessionID string, kind common.SessionType, message, system string, markers ...string) (*common.ChatSession, Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, Reply{}, common.NewValidationError("message is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, Reply{}, err
	}
	if session.Type != kind {
		return nil, Reply{}, common.Wrap(common.ErrNotFound, fmt.Errorf("%s session %s", kind, sessionID))
	}
	if session.Completed {
		return nil, Reply{}, common.Wrap(common.ErrConflict, fmt.Errorf("session %s already completed", sessionID))
	}

	session.Messages = append(session.Messages, common.ChatMessage{Role: provider.RoleUser, Content: message})

	msgs := make([]provider.Message, 0, len(session.Messages)+1)
	msgs = append(msgs, provider.Message{Role: provider.RoleSystem, Content: system})
	for _, m := range session.Messages {
		msgs = append(msgs, provider.Message{Role: m.Role, Content: m.Content})
	}

	content, err := s.ai.Complete(ctx, &provider.Request{
		Messages:    msgs,
		MaxTokens:   700,
		Temperature: 0.7,
		JSONMode:    true,
		Purpose:     "chat_" + string(kind),
	})
	if err != nil {
		return nil, Reply{}, err
	}

	reply := ParseReply(content, markers...)
	return session, reply, nil
}

// finish 記錄助理回覆並儲存對話
func (s *Service) finish(ctx context.Context, session *common.ChatSession, reply Reply) (*Response, error) {
	session.Messages = append(session.Messages, common.ChatMessage{Role: provider.RoleAssistant, Content: reply.Message})
	session.Completed = reply.Completed
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}

	if reply.Completed {
		common.LogInfo("對話完成",
			zap.String("session_id", session.ID),
			zap.String("session_type", string(session.Type)),
			zap.Int("messages", len(session.Messages)),
		)
	}

	return &Response{
		Message:       reply.Message,
		SessionID:     session.ID,
		Completed:     reply.Completed,
		ExtractedData: session.ExtractedData,
	}, nil
}

// extractProfile 先用回覆附帶的資料，不足時再請 AI 從完整對話抽取
func (s *Service) extractProfile(ctx context.Context, session *common.ChatSession, reply Reply) (*common.HouseholdProfile, error) {
	if reply.HasData() {
		profile, err := decodeProfile(string(reply.Data))
		if err == nil {
			return profile, nil
		}
		common.LogDebug("回覆附帶的家庭資料不完整，改為抽取", zap.Error(err))
	}

	var e extractedProfile
	user := "Extract data from this conversation:\n\n" + transcript(session.Messages)
	if err := s.ai.GenerateJSON(ctx, "profile_extraction", profileExtractionPrompt, user, &e); err != nil {
		return nil, err
	}
	if len(e.Members) == 0 {
		return nil, common.Wrap(common.ErrParseFailure, fmt.Errorf("extracted profile has no members"))
	}
	return e.toProfile(), nil
}

// extractConstraints 先用回覆附帶的資料，不足時再請 AI 從完整對話抽取
func (s *Service) extractConstraints(ctx context.Context, session *common.ChatSession, reply Reply) (common.WeeklyConstraints, error) {
	if reply.HasData() {
		constraints, err := decodeConstraints(string(reply.Data))
		if err == nil {
			return constraints, nil
		}
		common.LogDebug("回覆附帶的每日限制無法解析，改為抽取", zap.Error(err))
	}

	var raw map[string]interface{}
	user := "Parse this weekly planning conversation:\n\n" + transcript(session.Messages)
	if err := s.ai.GenerateJSON(ctx, "constraint_extraction", constraintExtractionPrompt, user, &raw); err != nil {
		return nil, err
	}
	text, err := common.ToJSON(raw)
	if err != nil {
		return nil, common.Wrap(common.ErrParseFailure, err)
	}
	return decodeConstraints(text)
}

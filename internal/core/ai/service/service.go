package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"meal-planner/internal/core/ai/provider"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Service AI 服務：對上游限速，並把回應解析成結構化資料
type Service struct {
	provider provider.Provider
	limiter  *rate.Limiter
}

// NewService 創建 AI 服務；requestsPerSecond <= 0 表示不限速
func NewService(p provider.Provider, requestsPerSecond float64) *Service {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if requestsPerSecond > 0 {
		burst := int(requestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
	return &Service{
		provider: p,
		limiter:  limiter,
	}
}

// Complete 送出對話並回傳文字內容
func (s *Service) Complete(ctx context.Context, req *provider.Request) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	start := time.Now()
	resp, err := s.provider.Generate(ctx, req)
	common.LogAICall(req.Purpose, time.Since(start), err)
	if err != nil {
		return "", err
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", common.Wrap(common.ErrAIServiceError, fmt.Errorf("empty AI response"))
	}
	return resp.Content, nil
}

// GenerateJSON 以 system/user prompt 要求 JSON 回應並解析到 out
func (s *Service) GenerateJSON(ctx context.Context, purpose, system, user string, out interface{}) error {
	req := &provider.Request{
		Messages: []provider.Message{
			{Role: provider.RoleSystem, Content: system},
			{Role: provider.RoleUser, Content: user},
		},
		JSONMode: true,
		Purpose:  purpose,
	}

	content, err := s.Complete(ctx, req)
	if err != nil {
		return err
	}
	return DecodeJSON(content, out)
}

// DecodeJSON 去除 code fence 與說明文字後解析 JSON；失敗時回傳 ErrParseFailure
func DecodeJSON(content string, out interface{}) error {
	text, ok := common.ExtractJSONObject(content)
	if !ok {
		common.LogWarn("AI 回應不含 JSON 物件", zap.Int("length", len(content)))
		return common.Wrap(common.ErrParseFailure, fmt.Errorf("no JSON object in response"))
	}

	err := common.ParseJSON(text, out)
	if err == nil {
		return nil
	}

	// 模型偶爾輸出未加引號的鍵
	if retryErr := common.ParseJSON(common.QuoteJSONKeys(text), out); retryErr == nil {
		return nil
	}

	preview := text
	if len(preview) > 200 {
		preview = preview[:200]
	}
	common.LogWarn("AI 回應解析失敗",
		zap.Error(err),
		zap.String("preview", preview),
	)
	return common.Wrap(common.ErrParseFailure, err)
}

// Model 上游模型名稱
func (s *Service) Model() string {
	return s.provider.GetModel()
}

// Package providertest 提供測試用的假 AI 提供者
package providertest

import (
	"context"
	"sync"
	"time"

	"meal-planner/internal/core/ai/provider"
)

// Stub 依序回傳預設內容；內容用完後重複最後一筆
type Stub struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     int
	requests  []*provider.Request
}

// New 建立回傳指定內容的 Stub
func New(responses ...string) *Stub {
	return &Stub{responses: responses}
}

// Failing 建立每次都回傳 err 的 Stub
func Failing(err error) *Stub {
	return &Stub{err: err}
}

// Generate 實作 provider.Provider
func (s *Stub) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	s.requests = append(s.requests, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	if len(s.responses) == 0 {
		return &provider.Response{}, nil
	}

	i := s.calls - 1
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	return &provider.Response{Content: s.responses[i]}, nil
}

// Calls 已呼叫次數
func (s *Stub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// LastRequest 最後一次請求，沒有則為 nil
func (s *Stub) LastRequest() *provider.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[len(s.requests)-1]
}

func (s *Stub) GetModel() string           { return "stub-model" }
func (s *Stub) GetTimeout() time.Duration { return time.Second }
func (s *Stub) Close() error               { return nil }

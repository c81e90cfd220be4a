package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"meal-recommender/internal/core/ai"
	"meal-recommender/internal/core/ai/provider"
	"meal-recommender/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Service 帶快取與呼叫頻率限制的生成式服務
type Service struct {
	provider provider.Provider
	cache    ai.Cache
	limiter  *rate.Limiter
}

// NewService 創建 AI 服務，cache 為 nil 時不使用快取，requestsPerMinute <= 0 時不限制頻率
func NewService(p provider.Provider, cache ai.Cache, requestsPerMinute int) *Service {
	s := &Service{
		provider: p,
		cache:    cache,
	}
	if requestsPerMinute > 0 {
		s.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute)
	}
	return s
}

// Complete 依 prompt 取得回應，相同 prompt 優先使用快取
func (s *Service) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.ProcessRequest(ctx, prompt)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// ProcessRequest 統一對外方法
func (s *Service) ProcessRequest(ctx context.Context, prompt string) (*ai.Response, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("empty prompt")
	}

	if s.cache != nil {
		val, err := s.cache.Get(ctx, prompt)
		if err == nil {
			return &ai.Response{Content: val, CacheHit: true}, nil
		}
		if !errors.Is(err, common.ErrCacheMiss) && !errors.Is(err, common.ErrCacheDisabled) {
			common.LogWarn("快取讀取失敗", zap.Error(err))
		}
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("request rate limit exceeded: %w", err)
		}
	}

	resp, err := s.provider.Generate(ctx, provider.UserPrompt(prompt))
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, prompt, resp.Content); err != nil && !errors.Is(err, common.ErrCacheDisabled) {
			common.LogWarn("快取寫入失敗", zap.Error(err))
		}
	}
	return resp, nil
}

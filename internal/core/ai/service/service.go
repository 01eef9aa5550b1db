package service

import (
	"context"
	"fmt"
	"strings"

	"fridge-chef/internal/core/ai/cache"
	"fridge-chef/internal/core/ai/openrouter"
	"fridge-chef/internal/infrastructure/config"
	"fridge-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// Service AI 服務：模型選擇、回應緩存與 OpenRouter 呼叫的統一入口
type Service struct {
	config       *config.Config
	client       *openrouter.Client
	cacheManager *cache.CacheManager
}

// NewService 創建 AI 服務
func NewService(cfg *config.Config, cacheManager *cache.CacheManager) *Service {
	return &Service{
		config:       cfg,
		client:       openrouter.NewClient(cfg),
		cacheManager: cacheManager,
	}
}

// ProcessRequest 統一對外方法。
// imageData 非空時使用視覺模型，否則使用食譜模型。
func (s *Service) ProcessRequest(ctx context.Context, prompt string, imageData string) (string, error) {
	// 統一 prompt 格式，去除多餘空白，確保快取 key 一致
	prompt = strings.Join(strings.Fields(strings.TrimSpace(prompt)), " ")

	model := s.config.OpenRouter.RecipeModel
	if imageData != "" {
		model = s.config.OpenRouter.VisionModel
	}

	// 檢查緩存
	if s.cacheManager != nil {
		if val, err := s.cacheManager.Get(ctx, prompt, imageData); err == nil && val != "" {
			common.LogDebug("AI 回應命中快取",
				zap.String("model", model),
			)
			return val, nil
		}
	}

	content, err := s.client.GenerateResponse(ctx, model, prompt, imageData)
	if err != nil {
		return "", fmt.Errorf("AI service error: %w", err)
	}

	if s.cacheManager != nil {
		_ = s.cacheManager.Set(ctx, prompt, imageData, content)
	}

	return content, nil
}

// Close 釋放底層連線
func (s *Service) Close() error {
	return s.client.Close()
}

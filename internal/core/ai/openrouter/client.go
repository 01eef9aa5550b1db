package openrouter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fridge-chef/internal/infrastructure/config"
	"fridge-chef/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const baseURL = "https://openrouter.ai/api/v1"

// Client OpenRouter API 客戶端
type Client struct {
	config *config.Config
	client *resty.Client
}

// contentPart 多模態訊息的內容片段
type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type message struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type chatRequest struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewClient 創建新的 OpenRouter 客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.OpenRouter.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenRouter.APIKey)).
		SetHeader("HTTP-Referer", "https://fridge-chef.app").
		SetHeader("X-Title", "Fridge Chef")

	return &Client{
		config: cfg,
		client: client,
	}
}

// GenerateResponse 發送一次 chat-completions 往返並回傳文字內容。
// 暫時性失敗（網路錯誤、429、5xx）以退避重試，最多 MaxRetries 次；
// 其餘錯誤視為永久失敗，不重試。
func (c *Client) GenerateResponse(ctx context.Context, model string, prompt string, imageData string) (string, error) {
	req := c.buildRequest(model, prompt, imageData)

	var lastErr error
	for attempt := 0; attempt <= c.config.OpenRouter.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.config.OpenRouter.RetryBackoff * time.Duration(1<<(attempt-1))
			common.LogWarn("OpenRouter 請求重試",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(lastErr),
			)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		start := time.Now()
		resp, err := c.client.R().
			SetContext(ctx).
			SetBody(req).
			SetResult(&chatResponse{}).
			Post("/chat/completions")
		common.LogAICall(model, time.Since(start), err)

		if err != nil {
			// 網路層錯誤視為暫時性；ctx 取消直接放棄
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = fmt.Errorf("failed to send request to OpenRouter: %w", err)
			continue
		}

		if isTransientStatus(resp.StatusCode()) {
			lastErr = fmt.Errorf("OpenRouter API returned transient error (status %d): %s", resp.StatusCode(), resp.String())
			continue
		}

		if resp.StatusCode() != http.StatusOK {
			// 4xx（認證、請求格式）屬永久失敗
			return "", fmt.Errorf("OpenRouter API returned error (status %d): %s", resp.StatusCode(), resp.String())
		}

		result, ok := resp.Result().(*chatResponse)
		if !ok || len(result.Choices) == 0 {
			return "", fmt.Errorf("no choices in OpenRouter response")
		}

		content := result.Choices[0].Message.Content
		if content == "" {
			return "", fmt.Errorf("empty content in OpenRouter response")
		}
		return content, nil
	}

	return "", fmt.Errorf("OpenRouter request failed after %d retries: %w", c.config.OpenRouter.MaxRetries, lastErr)
}

// buildRequest 構建請求，圖片以 base64 data URL 內嵌
func (c *Client) buildRequest(model string, prompt string, imageData string) *chatRequest {
	// 簡化 prompt：去除前後空白，連續空白合併為一格
	simplePrompt := strings.Join(strings.Fields(strings.TrimSpace(prompt)), " ")

	content := []contentPart{
		{Type: "text", Text: simplePrompt},
	}
	if imageData != "" {
		url := imageData
		if !strings.HasPrefix(imageData, "data:image/") {
			url = fmt.Sprintf("data:image/jpeg;base64,%s", imageData)
		}
		content = append(content, contentPart{
			Type:     "image_url",
			ImageURL: &imageURL{URL: url},
		})
	}

	return &chatRequest{
		Model: model,
		Messages: []message{
			{Role: "user", Content: content},
		},
		MaxTokens: c.config.OpenRouter.MaxTokens,
	}
}

// isTransientStatus 判斷是否屬於可重試的狀態碼
func isTransientStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// Close 關閉客戶端
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}

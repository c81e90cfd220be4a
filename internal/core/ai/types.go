package ai

import "context"

// Cache 生成式回應快取，鍵為正規化後的 prompt
// 未命中時回傳 common.ErrCacheMiss
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Response 生成式服務回應
type Response struct {
	Content  string `json:"content"`
	Model    string `json:"model,omitempty"`
	CacheHit bool   `json:"cache_hit"`
	Usage    Usage  `json:"usage"`
}

// Usage 使用量
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

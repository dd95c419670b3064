package generate

import (
	"context"
	"errors"
	"fanhao/internal/domain/config"
	"fanhao/internal/domain/content"
	"fmt"
)

var (
	ErrEmptyResponse = errors.New("generate: empty response")
	ErrRejected      = errors.New("generate: response rejected")
)

// Completion 是一次文本生成请求。
type Completion struct {
	Prompt      string
	MaxTokens   int
	Temperature float32
}

// Service 是外部文本生成服务。实现需要支持并发调用。
type Service interface {
	Complete(ctx context.Context, req Completion) (string, error)
}

type Kind string

const (
	KindTitle   Kind = "title"
	KindPhrase  Kind = "phrase"
	KindSummary Kind = "summary"
	KindReview  Kind = "review"
)

// Text 是生成或回退得到的文本。Fallback 为 true 表示没有使用服务的结果。
type Text struct {
	Value    string
	Lang     content.Language
	Kind     Kind
	Fallback bool
}

func (t Text) String() string { return t.Value }

// StatusError 表示服务返回了非 2xx 状态。
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("generate: status %d: %s", e.Code, e.Body)
}

// NewService 按配置创建服务；没有配置密钥时返回 nil，调用方进入占位文本模式。
func NewService(ctx context.Context, cfg config.GenerationConfig) (Service, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	switch cfg.Provider {
	case "gemini":
		model := cfg.Model
		if model == "" {
			model = "gemini-1.5-flash"
		}
		return NewGeminiService(ctx, cfg.APIKey, model)
	case "deepseek", "":
		model := cfg.Model
		if model == "" {
			model = "deepseek-chat"
		}
		return NewChatService(cfg.APIURL, cfg.APIKey, model, cfg.Timeout), nil
	}
	return nil, fmt.Errorf("generate: unknown provider %q", cfg.Provider)
}

package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

func toPtr[T any](v T) *T {
	return &v
}

type GeminiService struct {
	client *genai.Client
	model  string
}

func NewGeminiService(ctx context.Context, apiKey, model string) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiService{client: client, model: model}, nil
}

func (g *GeminiService) Close() error {
	return g.client.Close()
}

func (g *GeminiService) Complete(ctx context.Context, req Completion) (string, error) {
	// GenerativeModel 的参数是字段，每次调用新建一个避免并发修改
	model := g.client.GenerativeModel(g.model)
	model.Temperature = toPtr(req.Temperature)
	if req.MaxTokens > 0 {
		model.MaxOutputTokens = toPtr(int32(req.MaxTokens))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", err
	}
	return extractText(resp)
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Embedder maps text to a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// OpenAIEmbeddingService calls an OpenAI-compatible embeddings endpoint.
// A failed call is retried once with backoff before the error surfaces.
type OpenAIEmbeddingService struct {
	client     *openai.Client
	model      string
	maxRetries int
	retryDelay time.Duration
}

func NewOpenAIEmbeddingService(baseURL, apiKey, model string) *OpenAIEmbeddingService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIEmbeddingService{
		client:     openai.NewClientWithConfig(config),
		model:      model,
		maxRetries: 1,
		retryDelay: 500 * time.Millisecond,
	}
}

func (s *OpenAIEmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.retryDelay << (attempt - 1)):
			}
		}

		resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: []string{text},
			Model: openai.EmbeddingModel(s.model),
		})
		if err != nil {
			lastErr = err
			continue
		}
		if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
			return nil, errors.New("received empty embedding from api")
		}
		return resp.Data[0].Embedding, nil
	}
	return nil, fmt.Errorf("embedding request failed: %w", lastErr)
}

package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/saktilink/edge-backend/internal/logger"
)

// llmClient talks to an OpenAI-compatible completion endpoint. On the
// edge box this is a local llama.cpp server; the same code works
// against any hosted endpoint when LLM_BASE_URL points there.
type llmClient struct {
	log        *logger.Logger
	client     openai.Client
	chatModel  string
	embedModel string
}

type LLMConfig struct {
	BaseURL    string
	APIKey     string
	ChatModel  string
	EmbedModel string
}

func newLLMClient(baseLog *logger.Logger, cfg LLMConfig) (*llmClient, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("empty LLM base URL")
	}
	opts := []option.RequestOption{option.WithBaseURL(cfg.BaseURL)}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = "local"
	}
	embedModel := cfg.EmbedModel
	if embedModel == "" {
		embedModel = chatModel
	}
	return &llmClient{
		log:        baseLog.With("service", "LLMClient"),
		client:     openai.NewClient(opts...),
		chatModel:  chatModel,
		embedModel: embedModel,
	}, nil
}

// NewGenerator builds the text-generation capability.
func NewGenerator(baseLog *logger.Logger, cfg LLMConfig) (Generator, error) {
	return newLLMClient(baseLog, cfg)
}

// NewEmbedder builds the embedding capability against the same endpoint.
func NewEmbedder(baseLog *logger.Logger, cfg LLMConfig) (Embedder, error) {
	return newLLMClient(baseLog, cfg)
}

func (l *llmClient) GenerateText(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if strings.TrimSpace(system) != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(user))

	resp, err := l.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: messages,
		Model:    openai.ChatModel(l.chatModel),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in completion response")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("empty completion content")
	}
	return content, nil
}

func (l *llmClient) Embed(ctx context.Context, inputs []string) ([][]float64, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := l.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: inputs},
		Model: openai.EmbeddingModel(l.embedModel),
	})
	if err != nil {
		return nil, fmt.Errorf("embeddings: %w", err)
	}
	if len(resp.Data) != len(inputs) {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(resp.Data), len(inputs))
	}
	out := make([][]float64, len(resp.Data))
	for _, d := range resp.Data {
		idx := int(d.Index)
		if idx < 0 || idx >= len(out) {
			return nil, fmt.Errorf("embedding index %d out of range", idx)
		}
		out[idx] = d.Embedding
	}
	return out, nil
}

func (l *llmClient) Close() error { return nil }

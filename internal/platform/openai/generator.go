package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/poetry-api/internal/config"
	"github.com/phrazzld/poetry-api/internal/domain"
	"github.com/phrazzld/poetry-api/internal/generation"
	"github.com/phrazzld/poetry-api/internal/prompt"
	"github.com/sashabaranov/go-openai"
)

// ProviderName identifies this adapter in errors and logs.
const ProviderName = config.ProviderOpenAI

// chatCompleter is the part of *openai.Client the generator uses.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Generator implements the generation.Generator interface using OpenAI's API.
type Generator struct {
	client      chatCompleter
	logger      *slog.Logger
	model       string
	temperature float32
	maxTokens   int
}

// NewGenerator creates a Generator from the LLM configuration.
func NewGenerator(logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return newGenerator(openai.NewClientWithConfig(clientConfig), logger, cfg), nil
}

func newGenerator(client chatCompleter, logger *slog.Logger, cfg config.LLMConfig) *Generator {
	model := cfg.ModelName
	if model == "" {
		model = config.DefaultModel(ProviderName)
	}

	return &Generator{
		client:      client,
		logger:      logger,
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

// GeneratePoem implements generation.Generator.
func (g *Generator) GeneratePoem(ctx context.Context, text string) (*domain.Poem, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt.WithFormatInstructions(text),
			},
		},
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	g.logger.DebugContext(ctx, "sending chat completion request",
		slog.String("model", g.model),
		slog.Int("max_tokens", g.maxTokens))

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			g.logger.WarnContext(ctx, "openai API rejected request",
				slog.Int("status_code", apiErr.HTTPStatusCode),
				slog.String("type", apiErr.Type))
		}
		return nil, generation.NewProviderError(ProviderName, fmt.Errorf("create chat completion: %w", err))
	}

	if len(resp.Choices) == 0 {
		return nil, generation.NewProviderError(ProviderName,
			fmt.Errorf("%w: response contained no choices", generation.ErrInvalidResponse))
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return nil, generation.NewProviderError(ProviderName, generation.ErrContentBlocked)
	}

	poem, err := generation.DecodePoem(choice.Message.Content)
	if err != nil {
		return nil, generation.NewProviderError(ProviderName, err)
	}

	g.logger.DebugContext(ctx, "chat completion coerced into poem",
		slog.Int("prompt_tokens", resp.Usage.PromptTokens),
		slog.Int("completion_tokens", resp.Usage.CompletionTokens))

	return poem, nil
}

var _ generation.Generator = (*Generator)(nil)

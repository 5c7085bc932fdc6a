package anthropic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/phrazzld/poetry-api/internal/config"
	"github.com/phrazzld/poetry-api/internal/domain"
	"github.com/phrazzld/poetry-api/internal/generation"
	"github.com/phrazzld/poetry-api/internal/prompt"
)

// ProviderName identifies this adapter in errors and logs.
const ProviderName = config.ProviderAnthropic

// stopReasonRefusal is reported when Claude declines to answer.
const stopReasonRefusal = "refusal"

// messageCreator is the part of the SDK's MessageService the generator uses.
type messageCreator interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Generator implements the generation.Generator interface using Anthropic's API.
type Generator struct {
	messages    messageCreator
	logger      *slog.Logger
	model       string
	maxTokens   int64
	temperature float64
}

// NewGenerator creates a Generator from the LLM configuration.
// The SDK's automatic retries are disabled; each poem is a single attempt.
func NewGenerator(logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: anthropic API key cannot be empty", generation.ErrInvalidConfig)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := anthropic.NewClient(opts...)
	return newGenerator(&client.Messages, logger, cfg), nil
}

func newGenerator(messages messageCreator, logger *slog.Logger, cfg config.LLMConfig) *Generator {
	model := cfg.ModelName
	if model == "" {
		model = config.DefaultModel(ProviderName)
	}

	maxTokens := int64(cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 512
	}

	return &Generator{
		messages:    messages,
		logger:      logger,
		model:       model,
		maxTokens:   maxTokens,
		temperature: float64(cfg.Temperature),
	}
}

// GeneratePoem implements generation.Generator.
func (g *Generator) GeneratePoem(ctx context.Context, text string) (*domain.Poem, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(g.model),
		MaxTokens:   g.maxTokens,
		Temperature: anthropic.Float(g.temperature),
		Messages: []anthropic.MessageParam{
			{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					anthropic.NewTextBlock(prompt.WithFormatInstructions(text)),
				},
			},
		},
	}

	g.logger.DebugContext(ctx, "sending message request",
		slog.String("model", g.model),
		slog.Int64("max_tokens", g.maxTokens))

	msg, err := g.messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			g.logger.WarnContext(ctx, "anthropic API rejected request",
				slog.Int("status_code", apiErr.StatusCode))
		}
		return nil, generation.NewProviderError(ProviderName, fmt.Errorf("create message: %w", err))
	}

	if msg == nil {
		return nil, generation.NewProviderError(ProviderName,
			fmt.Errorf("%w: nil message", generation.ErrInvalidResponse))
	}

	if msg.StopReason == stopReasonRefusal {
		return nil, generation.NewProviderError(ProviderName, generation.ErrContentBlocked)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	if sb.Len() == 0 {
		return nil, generation.NewProviderError(ProviderName,
			fmt.Errorf("%w: message contained no text blocks", generation.ErrInvalidResponse))
	}

	poem, err := generation.DecodePoem(sb.String())
	if err != nil {
		return nil, generation.NewProviderError(ProviderName, err)
	}

	g.logger.DebugContext(ctx, "message coerced into poem",
		slog.Int64("input_tokens", msg.Usage.InputTokens),
		slog.Int64("output_tokens", msg.Usage.OutputTokens))

	return poem, nil
}

var _ generation.Generator = (*Generator)(nil)

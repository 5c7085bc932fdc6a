package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/poetry-api/internal/config"
	"github.com/phrazzld/poetry-api/internal/domain"
	"github.com/phrazzld/poetry-api/internal/generation"
	"google.golang.org/genai"
)

// ProviderName identifies this adapter in errors and logs.
const ProviderName = config.ProviderGemini

// contentGenerator is the part of the genai Models service the generator uses.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API to generate poems.
type GeminiGenerator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// models is the genai Models service used to make requests
	models contentGenerator

	// model is the name of the Gemini model to use
	model string

	// genConfig is sent with every request
	genConfig *genai.GenerateContentConfig
}

// NewGeminiGenerator creates a new instance of GeminiGenerator with the provided dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name, and other settings
//
// Returns:
//   - A properly initialized GeminiGenerator or an error if initialization fails
func NewGeminiGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return newGeminiGenerator(client.Models, logger, cfg), nil
}

func newGeminiGenerator(models contentGenerator, logger *slog.Logger, cfg config.LLMConfig) *GeminiGenerator {
	model := cfg.ModelName
	if model == "" {
		model = config.DefaultModel(ProviderName)
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(cfg.Temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   PoemResponseSchema(),
	}
	if cfg.MaxTokens > 0 {
		genConfig.MaxOutputTokens = int32(cfg.MaxTokens)
	}

	return &GeminiGenerator{
		logger:    logger,
		models:    models,
		model:     model,
		genConfig: genConfig,
	}
}

// GeneratePoem implements generation.Generator.
// The response schema replaces textual format instructions, so the prompt is
// sent unchanged.
func (g *GeminiGenerator) GeneratePoem(ctx context.Context, prompt string) (*domain.Poem, error) {
	g.logger.DebugContext(ctx, "Making Gemini API call",
		"model", g.model,
		"prompt_length", len(prompt))

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), g.genConfig)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			g.logger.WarnContext(ctx, "Gemini API rejected request",
				"status_code", apiErr.Code,
				"status", apiErr.Status)
		}
		return nil, generation.NewProviderError(ProviderName, fmt.Errorf("generate content: %w", err))
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, generation.NewProviderError(ProviderName, err)
	}

	poem, err := generation.DecodePoem(text)
	if err != nil {
		return nil, generation.NewProviderError(ProviderName, err)
	}

	g.logger.DebugContext(ctx, "Gemini API call successful",
		"model", g.model)

	return poem, nil
}

// responseText extracts the text of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked: %s",
			generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}

	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}

	return sb.String(), nil
}

var _ generation.Generator = (*GeminiGenerator)(nil)

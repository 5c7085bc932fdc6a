package ollama

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/JexSrs/go-ollama"
	"github.com/phrazzld/poetry-api/internal/config"
	"github.com/phrazzld/poetry-api/internal/domain"
	"github.com/phrazzld/poetry-api/internal/generation"
	"github.com/phrazzld/poetry-api/internal/prompt"
)

// ProviderName identifies this adapter in errors and logs.
const ProviderName = config.ProviderOllama

// jsonFormat selects Ollama's JSON output mode.
const jsonFormat = "json"

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:11434"

// completionRequest carries everything sent on one generate call.
type completionRequest struct {
	Model       string
	System      string
	Prompt      string
	Format      string
	Temperature float64
	MaxTokens   int
}

// completer runs a single non-streaming generate call.
type completer interface {
	Complete(req completionRequest) (response string, done bool, err error)
}

// clientCompleter adapts *ollama.Ollama to completer.
type clientCompleter struct {
	client *ollama.Ollama
}

func (c clientCompleter) Complete(req completionRequest) (string, bool, error) {
	opts := ollama.Options{Temperature: &req.Temperature}
	if req.MaxTokens > 0 {
		opts.NumPredict = &req.MaxTokens
	}

	res, err := c.client.Generate(
		c.client.Generate.WithModel(req.Model),
		c.client.Generate.WithSystem(req.System),
		c.client.Generate.WithPrompt(req.Prompt),
		c.client.Generate.WithFormat(req.Format),
		c.client.Generate.WithOptions(opts),
	)
	if err != nil {
		return "", false, err
	}
	return res.Response, res.Done, nil
}

// Generator implements the generation.Generator interface using Ollama.
type Generator struct {
	client      completer
	logger      *slog.Logger
	model       string
	temperature float64
	maxTokens   int
}

// NewGenerator creates a Generator from the LLM configuration.
// Ollama needs no API key.
func NewGenerator(logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	host := cfg.BaseURL
	if host == "" {
		host = DefaultBaseURL
	}

	u, err := url.Parse(host)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid ollama base URL %q", generation.ErrInvalidConfig, host)
	}

	return newGenerator(clientCompleter{client: ollama.New(*u)}, logger, cfg), nil
}

func newGenerator(client completer, logger *slog.Logger, cfg config.LLMConfig) *Generator {
	model := cfg.ModelName
	if model == "" {
		model = config.DefaultModel(ProviderName)
	}

	return &Generator{
		client:      client,
		logger:      logger,
		model:       model,
		temperature: float64(cfg.Temperature),
		maxTokens:   cfg.MaxTokens,
	}
}

type completion struct {
	response string
	done     bool
	err      error
}

// GeneratePoem implements generation.Generator.
// Ollama's JSON mode is requested and the format instructions are sent as the
// system message.
func (g *Generator) GeneratePoem(ctx context.Context, text string) (*domain.Poem, error) {
	g.logger.DebugContext(ctx, "sending generate request",
		slog.String("model", g.model),
		slog.Int("prompt_length", len(text)))

	// Buffered so the goroutine can finish after the caller has gone.
	result := make(chan completion, 1)
	go func() {
		response, done, err := g.client.Complete(completionRequest{
			Model:       g.model,
			System:      prompt.FormatInstructions(),
			Prompt:      text,
			Format:      jsonFormat,
			Temperature: g.temperature,
			MaxTokens:   g.maxTokens,
		})
		result <- completion{response: response, done: done, err: err}
	}()

	var res completion
	select {
	case <-ctx.Done():
		g.logger.WarnContext(ctx, "ollama request abandoned",
			slog.String("reason", ctx.Err().Error()))
		return nil, generation.NewProviderError(ProviderName, fmt.Errorf("generate: %w", ctx.Err()))
	case res = <-result:
	}

	if res.err != nil {
		return nil, generation.NewProviderError(ProviderName, fmt.Errorf("generate: %w", res.err))
	}

	if !res.done {
		return nil, generation.NewProviderError(ProviderName,
			fmt.Errorf("%w: generation did not complete", generation.ErrInvalidResponse))
	}

	poem, err := generation.DecodePoem(res.response)
	if err != nil {
		return nil, generation.NewProviderError(ProviderName, err)
	}

	return poem, nil
}

var _ generation.Generator = (*Generator)(nil)

package ollama

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/poetry-api/internal/config"
	"github.com/phrazzld/poetry-api/internal/generation"
	"github.com/phrazzld/poetry-api/internal/platform/logger"
	"github.com/phrazzld/poetry-api/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPoemJSON = `{"title":"Falling Leaves","content":"Crimson leaves descend","genre":"nature","theme":"autumn"}`

type fakeCompleter struct {
	response string
	done     bool
	err      error
	block    chan struct{}

	req completionRequest
}

func (f *fakeCompleter) Complete(req completionRequest) (string, bool, error) {
	if f.block != nil {
		<-f.block
	}
	f.req = req
	return f.response, f.done, f.err
}

func TestNewGenerator(t *testing.T) {
	t.Parallel()

	log, _ := logger.GetTestLogger(t)

	_, err := NewGenerator(nil, config.LLMConfig{})
	assert.Error(t, err)

	gen, err := NewGenerator(log, config.LLMConfig{Provider: config.ProviderOllama})
	require.NoError(t, err, "api key and base url are optional")
	assert.Equal(t, config.DefaultModel(config.ProviderOllama), gen.model)

	_, err = NewGenerator(log, config.LLMConfig{Provider: config.ProviderOllama, BaseURL: "localhost"})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestGeneratePoem_Success(t *testing.T) {
	t.Parallel()

	log, _ := logger.GetTestLogger(t)
	fake := &fakeCompleter{response: "```\n" + validPoemJSON + "\n```", done: true}
	gen := newGenerator(fake, log, config.LLMConfig{ModelName: "mistral", Temperature: 0.25, MaxTokens: 300})

	poem, err := gen.GeneratePoem(context.Background(), "Write a nature haiku about autumn in 5-7-5 format.")

	require.NoError(t, err)
	assert.Equal(t, "Falling Leaves", poem.Title)
	assert.Equal(t, "mistral", fake.req.Model)
	assert.Equal(t, prompt.FormatInstructions(), fake.req.System)
	assert.Equal(t, "Write a nature haiku about autumn in 5-7-5 format.", fake.req.Prompt)
	assert.Equal(t, "json", fake.req.Format)
	assert.InDelta(t, 0.25, fake.req.Temperature, 0.0001)
	assert.Equal(t, 300, fake.req.MaxTokens)
}

func TestGeneratePoem_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		fake  *fakeCompleter
		cause error
	}{
		{
			name:  "server down",
			fake:  &fakeCompleter{err: errors.New("dial tcp 127.0.0.1:11434: connect: connection refused")},
			cause: generation.ErrProviderUnavailable,
		},
		{
			name:  "not done",
			fake:  &fakeCompleter{response: validPoemJSON},
			cause: generation.ErrInvalidResponse,
		},
		{
			name:  "empty response",
			fake:  &fakeCompleter{done: true},
			cause: generation.ErrInvalidResponse,
		},
		{
			name:  "missing theme",
			fake:  &fakeCompleter{response: `{"title":"a","content":"b","genre":"c"}`, done: true},
			cause: generation.ErrInvalidResponse,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			log, _ := logger.GetTestLogger(t)
			gen := newGenerator(tc.fake, log, config.LLMConfig{})

			poem, err := gen.GeneratePoem(context.Background(), "prompt")

			assert.Nil(t, poem)
			assert.ErrorIs(t, err, generation.ErrProviderUnavailable)
			assert.ErrorIs(t, err, tc.cause)
		})
	}
}

func TestGeneratePoem_ContextDeadline(t *testing.T) {
	t.Parallel()

	log, logBuf := logger.GetTestLogger(t)
	fake := &fakeCompleter{response: validPoemJSON, done: true, block: make(chan struct{})}
	defer close(fake.block)
	gen := newGenerator(fake, log, config.LLMConfig{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	poem, err := gen.GeneratePoem(ctx, "prompt")

	assert.Less(t, time.Since(start), time.Second)
	assert.Nil(t, poem)
	assert.ErrorIs(t, err, generation.ErrProviderUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	logger.AssertLogContains(t, logBuf, "ollama request abandoned")
}

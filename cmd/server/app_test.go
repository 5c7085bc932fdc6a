package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/poetry-api/internal/api"
	"github.com/phrazzld/poetry-api/internal/api/middleware"
	"github.com/phrazzld/poetry-api/internal/config"
	"github.com/phrazzld/poetry-api/internal/domain"
	"github.com/phrazzld/poetry-api/internal/generation"
	"github.com/phrazzld/poetry-api/internal/mocks"
	"github.com/phrazzld/poetry-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const providerUnavailableBody = "Unable to communicate with the configured LLM. Please try again later."

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                8080,
			LogLevel:            "debug",
			ReadTimeoutSeconds:  5,
			WriteTimeoutSeconds: 10,
		},
		LLM: config.LLMConfig{
			Provider:       config.ProviderOpenAI,
			APIKey:         "sk-test",
			ModelName:      "gpt-4o-mini",
			Temperature:    0.7,
			MaxTokens:      512,
			TimeoutSeconds: 2,
		},
	}
}

// newTestServer starts the full router backed by the given generator.
func newTestServer(t *testing.T, gen generation.Generator) (*httptest.Server, *logger.TestLogBuffer) {
	t.Helper()

	log, logBuf := logger.GetTestLogger(t)
	app, err := newApplication(testConfig(), log, gen)
	require.NoError(t, err)

	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(srv.Close)
	return srv, logBuf
}

func postPoem(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(srv.URL+"/poems", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeProblem(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
	var problem map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&problem))
	return problem
}

func TestNewApplication_Validation(t *testing.T) {
	t.Parallel()

	log, _ := logger.GetTestLogger(t)
	gen := mocks.NewMockGeneratorWithDefaultPoem()

	_, err := newApplication(nil, log, gen)
	assert.Error(t, err)

	_, err = newApplication(testConfig(), nil, gen)
	assert.Error(t, err)

	_, err = newApplication(testConfig(), log, nil)
	assert.Error(t, err)

	short := testConfig()
	short.Server.WriteTimeoutSeconds = 1
	_, err = newApplication(short, log, gen)
	assert.ErrorContains(t, err, "server.write_timeout_seconds")
}

func TestPoems_Success(t *testing.T) {
	t.Parallel()

	gen := mocks.NewMockGeneratorWithPoem(&domain.Poem{
		Title:   "Falling Leaves",
		Content: "Crimson leaves descend\nwhispering of change to come\nautumn's soft goodbye",
		Genre:   "nature",
		Theme:   "autumn",
	})
	srv, _ := newTestServer(t, gen)

	resp := postPoem(t, srv, `{"genre":"nature","theme":"autumn"}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get(middleware.TraceIDHeader))

	var poem api.PoemResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&poem))
	assert.Equal(t, "Falling Leaves", poem.Title)
	assert.Equal(t, "nature", poem.Genre)
	assert.Equal(t, "autumn", poem.Theme)
	assert.NotEmpty(t, poem.Content)

	assert.Equal(t, 1, gen.CallCount())
	assert.Equal(t, "Write a nature haiku about autumn in 5-7-5 format.", gen.LastPrompt())
}

func TestPoems_ProviderUnavailable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		gen  *mocks.MockGenerator
	}{
		{name: "provider unreachable", gen: mocks.MockGeneratorThatFails()},
		{name: "response missing fields", gen: mocks.MockGeneratorWithInvalidResponse()},
		{
			name: "coercion failure",
			gen: &mocks.MockGenerator{
				GeneratePoemFn: func(ctx context.Context, prompt string) (*domain.Poem, error) {
					return generation.DecodePoem(`{"title":"Falling Leaves","content":"Crimson leaves"}`)
				},
			},
		},
		{name: "unclassified error", gen: mocks.NewMockGeneratorWithError(errors.New("boom"))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv, logBuf := newTestServer(t, tc.gen)

			resp := postPoem(t, srv, `{"genre":"nature","theme":"autumn"}`)

			require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
			problem := decodeProblem(t, resp)
			assert.Equal(t, providerUnavailableBody, problem["detail"])
			assert.Equal(t, float64(http.StatusServiceUnavailable), problem["status"])
			assert.Equal(t, "Service Unavailable", problem["title"])
			assert.Equal(t, "/poems", problem["instance"])
			assert.NotContains(t, problem["detail"], "mock")

			logger.AssertLogContains(t, logBuf, "poem generation failed")
		})
	}
}

func TestPoems_ProviderTimeout(t *testing.T) {
	t.Parallel()

	gen := &mocks.MockGenerator{
		GeneratePoemFn: func(ctx context.Context, prompt string) (*domain.Poem, error) {
			<-ctx.Done()
			return nil, generation.NewProviderError("slow", ctx.Err())
		},
	}
	srv, _ := newTestServer(t, gen)

	start := time.Now()
	resp := postPoem(t, srv, `{"genre":"nature","theme":"autumn"}`)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, providerUnavailableBody, decodeProblem(t, resp)["detail"])
}

func TestPoems_BadRequests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		wantDetail string
	}{
		{name: "malformed json", body: `{"genre":`, wantDetail: "Invalid request format"},
		{name: "empty body", body: ``, wantDetail: "Invalid request format"},
		{name: "missing theme", body: `{"genre":"nature"}`, wantDetail: "theme"},
		{name: "missing genre", body: `{"theme":"autumn"}`, wantDetail: "genre"},
		{name: "blank genre", body: `{"genre":"   ","theme":"autumn"}`, wantDetail: "genre"},
		{
			name:       "theme too long",
			body:       fmt.Sprintf(`{"genre":"nature","theme":%q}`, strings.Repeat("a", 101)),
			wantDetail: "theme",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gen := mocks.NewMockGeneratorWithDefaultPoem()
			srv, _ := newTestServer(t, gen)

			resp := postPoem(t, srv, tc.body)

			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			problem := decodeProblem(t, resp)
			assert.Contains(t, problem["detail"], tc.wantDetail)
			assert.Equal(t, 0, gen.CallCount(), "provider must not be called for invalid input")
		})
	}
}

func TestPoems_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, mocks.NewMockGeneratorWithDefaultPoem())

	resp, err := http.Get(srv.URL + "/poems")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

var promptPattern = regexp.MustCompile(`^Write a (.+) haiku about (.+) in 5-7-5 format\.$`)

// echoGenerator answers with the genre and theme found in the prompt.
func echoGenerator() *mocks.MockGenerator {
	return &mocks.MockGenerator{
		GeneratePoemFn: func(ctx context.Context, prompt string) (*domain.Poem, error) {
			m := promptPattern.FindStringSubmatch(prompt)
			if m == nil {
				return nil, generation.NewProviderError("echo", generation.ErrInvalidResponse)
			}
			time.Sleep(time.Millisecond)
			return domain.NewPoem("Echo", "five seven five", m[1], m[2])
		},
	}
}

func TestPoems_ConcurrentRequestsStayIsolated(t *testing.T) {
	t.Parallel()

	gen := echoGenerator()
	srv, _ := newTestServer(t, gen)

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			genre := fmt.Sprintf("genre-%d", i)
			theme := fmt.Sprintf("theme-%d", i)
			body, _ := json.Marshal(map[string]string{"genre": genre, "theme": theme})

			resp, err := http.Post(srv.URL+"/poems", "application/json", bytes.NewReader(body))
			if err != nil {
				errs <- err
				return
			}
			defer func() { _ = resp.Body.Close() }()

			if resp.StatusCode != http.StatusOK {
				raw, _ := io.ReadAll(resp.Body)
				errs <- fmt.Errorf("request %d: status %d: %s", i, resp.StatusCode, raw)
				return
			}

			var poem api.PoemResponse
			if err := json.NewDecoder(resp.Body).Decode(&poem); err != nil {
				errs <- err
				return
			}
			if poem.Genre != genre || poem.Theme != theme {
				errs <- fmt.Errorf("request %d: got genre %q theme %q", i, poem.Genre, poem.Theme)
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	assert.Equal(t, n, gen.CallCount())
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, mocks.NewMockGeneratorWithDefaultPoem())

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestServe_GracefulShutdown(t *testing.T) {
	t.Parallel()

	log, logBuf := logger.GetTestLogger(t)
	app, err := newApplication(testConfig(), log, mocks.NewMockGeneratorWithDefaultPoem())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, ln, app.setupRouter()) }()

	url := "http://" + ln.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	logger.AssertLogContains(t, logBuf, "Server shutdown completed")
}

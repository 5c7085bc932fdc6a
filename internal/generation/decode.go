package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/poetry-api/internal/domain"
)

var validate = validator.New()

// PoemSchema is the JSON object providers are asked to produce.
type PoemSchema struct {
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content" validate:"required"`
	Genre   string `json:"genre"   validate:"required"`
	Theme   string `json:"theme"   validate:"required"`
}

// DecodePoem coerces raw model output into a Poem.
//
// Markdown code fences, text before the first JSON object and anything after
// it are ignored. All four fields must be present and non-empty.
func DecodePoem(raw string) (*domain.Poem, error) {
	text := strings.TrimSpace(stripCodeFence(raw))
	if text == "" {
		return nil, fmt.Errorf("%w: empty content", ErrInvalidResponse)
	}

	start := strings.Index(text, "{")
	if start < 0 {
		return nil, fmt.Errorf("%w: no JSON object in response", ErrInvalidResponse)
	}

	// The decoder stops after the first value, so trailing chatter is never read.
	var schema PoemSchema
	if err := json.NewDecoder(strings.NewReader(text[start:])).Decode(&schema); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", ErrInvalidResponse, err)
	}

	if err := validate.Struct(schema); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	poem, err := domain.NewPoem(schema.Title, schema.Content, schema.Genre, schema.Theme)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return poem, nil
}

// stripCodeFence removes a surrounding ``` or ```json fence.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.Index(s, "\n"); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSuffix(strings.TrimSpace(s), "```")
}

package domain

import (
	"strings"
	"unicode/utf8"
)

// MaxSubjectLength is the maximum number of characters accepted for a genre or theme.
const MaxSubjectLength = 100

// Poem is a generated poem as returned to API callers.
// It is created once per request from the provider's response and never mutated.
type Poem struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Genre   string `json:"genre"`
	Theme   string `json:"theme"`
}

// NewPoem creates a Poem, rejecting any empty field.
// No field is defaulted: a provider response missing a value is invalid.
func NewPoem(title, content, genre, theme string) (*Poem, error) {
	poem := &Poem{
		Title:   title,
		Content: content,
		Genre:   genre,
		Theme:   theme,
	}

	if err := poem.Validate(); err != nil {
		return nil, err
	}

	return poem, nil
}

// Validate checks that every field of the poem carries a value.
func (p *Poem) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"title", p.Title},
		{"content", p.Content},
		{"genre", p.Genre},
		{"theme", p.Theme},
	}

	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return NewValidationError(f.name, "cannot be empty", ErrEmptyContent)
		}
	}

	return nil
}

// PoemRequest is the inbound request for a poem.
type PoemRequest struct {
	Genre string `json:"genre"`
	Theme string `json:"theme"`
}

// Validate checks that genre and theme are present and of reasonable length.
// The values themselves are passed to the prompt verbatim.
func (r PoemRequest) Validate() error {
	if err := validateSubject("genre", r.Genre); err != nil {
		return err
	}
	return validateSubject("theme", r.Theme)
}

func validateSubject(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(field, "is required", ErrEmptyContent)
	}
	if utf8.RuneCountInString(value) > MaxSubjectLength {
		return NewValidationError(field, "is too long", ErrTooLong)
	}
	return nil
}

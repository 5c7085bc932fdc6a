package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoem(t *testing.T) {
	t.Parallel()

	poem, err := NewPoem("Falling Leaves", "Crimson leaves descend\nwhispering to the cold earth\nautumn says goodbye", "nature", "autumn")
	require.NoError(t, err)
	assert.Equal(t, "Falling Leaves", poem.Title)
	assert.Equal(t, "nature", poem.Genre)
	assert.Equal(t, "autumn", poem.Theme)
	assert.Contains(t, poem.Content, "whispering")
}

func TestNewPoem_MissingFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		title   string
		content string
		genre   string
		theme   string
		field   string
	}{
		{"missing title", "", "content", "nature", "autumn", "title"},
		{"missing content", "Title", "", "nature", "autumn", "content"},
		{"missing genre", "Title", "content", "", "autumn", "genre"},
		{"missing theme", "Title", "content", "nature", "", "theme"},
		{"blank content", "Title", "   \n", "nature", "autumn", "content"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			poem, err := NewPoem(tc.title, tc.content, tc.genre, tc.theme)
			require.Error(t, err)
			assert.Nil(t, poem)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.True(t, errors.Is(err, ErrEmptyContent))

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestPoemRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     PoemRequest
		wantErr error
		field   string
	}{
		{"valid", PoemRequest{Genre: "nature", Theme: "autumn"}, nil, ""},
		{"empty genre", PoemRequest{Genre: "", Theme: "autumn"}, ErrEmptyContent, "genre"},
		{"blank theme", PoemRequest{Genre: "nature", Theme: "  "}, ErrEmptyContent, "theme"},
		{"long genre", PoemRequest{Genre: strings.Repeat("a", MaxSubjectLength+1), Theme: "autumn"}, ErrTooLong, "genre"},
		{"max length theme", PoemRequest{Genre: "nature", Theme: strings.Repeat("é", MaxSubjectLength)}, nil, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.req.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, ErrValidation)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

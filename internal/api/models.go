package api

import "github.com/phrazzld/poetry-api/internal/domain"

// PoemRequest defines the payload for the poem generation endpoint.
type PoemRequest struct {
	Genre string `json:"genre" validate:"required,max=100"`
	Theme string `json:"theme" validate:"required,max=100"`
}

// PoemResponse defines the successful response of the poem generation endpoint.
type PoemResponse struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Genre   string `json:"genre"`
	Theme   string `json:"theme"`
}

// poemToResponse converts a domain.Poem to a PoemResponse
func poemToResponse(poem *domain.Poem) PoemResponse {
	return PoemResponse{
		Title:   poem.Title,
		Content: poem.Content,
		Genre:   poem.Genre,
		Theme:   poem.Theme,
	}
}

package gemini

import "google.golang.org/genai"

// poemFields lists the poem keys in the order the model should emit them.
var poemFields = []string{"title", "content", "genre", "theme"}

// PoemResponseSchema is the response schema sent with every request.
// Gemini constrains its JSON output to this shape.
func PoemResponseSchema() *genai.Schema {
	props := make(map[string]*genai.Schema, len(poemFields))
	for _, field := range poemFields {
		props[field] = &genai.Schema{Type: genai.TypeString}
	}

	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: props,
		Required:   append([]string(nil), poemFields...),
	}
}

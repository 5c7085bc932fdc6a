package prompt

import (
	"strings"
	"text/template"
)

// HaikuTemplate is the source of the poem prompt.
const HaikuTemplate = "Write a {{.Genre}} haiku about {{.Theme}} in 5-7-5 format."

// haikuTemplate is parsed once; text/template is used so values are not HTML-escaped.
var haikuTemplate = template.Must(template.New("haiku").Parse(HaikuTemplate))

// promptData represents the data passed to the prompt template
type promptData struct {
	Genre string
	Theme string
}

// Build renders the haiku prompt for the given genre and theme.
func Build(genre, theme string) string {
	var sb strings.Builder
	// Executing a parsed template into a strings.Builder with a plain
	// struct of strings cannot fail.
	_ = haikuTemplate.Execute(&sb, promptData{Genre: genre, Theme: theme})
	return sb.String()
}

// formatInstructions asks the model to answer with a bare JSON poem object.
const formatInstructions = `Your response should be in JSON format.
Do not include any explanations, only provide a RFC8259 compliant JSON response following this format without deviation.
Do not include markdown code blocks in your response.
Here is the JSON Schema instance your output must adhere to:
{
  "type": "object",
  "properties": {
    "title": {"type": "string"},
    "content": {"type": "string"},
    "genre": {"type": "string"},
    "theme": {"type": "string"}
  },
  "required": ["title", "content", "genre", "theme"],
  "additionalProperties": false
}`

// FormatInstructions returns the structured-output instructions used with
// providers that have no native JSON schema support.
func FormatInstructions() string {
	return formatInstructions
}

// WithFormatInstructions appends the structured-output instructions to a prompt.
func WithFormatInstructions(p string) string {
	return p + "\n\n" + formatInstructions
}

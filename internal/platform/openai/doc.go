// Package openai implements generation.Generator on top of OpenAI's chat
// completion API using github.com/sashabaranov/go-openai. Responses are
// requested in JSON mode and coerced into a domain.Poem.
package openai

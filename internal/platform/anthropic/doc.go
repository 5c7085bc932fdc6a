// Package anthropic implements generation.Generator on top of Anthropic's
// Messages API. Claude has no JSON response mode, so the prompt carries the
// poem format instructions and the text blocks of the reply are coerced with
// generation.DecodePoem.
package anthropic

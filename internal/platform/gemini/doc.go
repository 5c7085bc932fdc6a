// Package gemini provides an implementation of the generation.Generator interface
// that uses Google's Gemini API for generating poems.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the application's poem generation to Google's external Gemini
// service without exposing the details of the service to the core application.
//
// Key components:
//
// 1. GeminiGenerator:
//   - Implements the generation.Generator interface
//   - Handles communication with the Gemini API through google.golang.org/genai
//
// 2. Structured output:
//   - Requests application/json output constrained by PoemResponseSchema
//   - Coerces the returned text into a domain.Poem via generation.DecodePoem
//
// 3. Error Handling:
//   - Every failure is returned as a *generation.ProviderError
//   - Safety blocks are reported as generation.ErrContentBlocked
//   - Empty or malformed candidates are reported as generation.ErrInvalidResponse
package gemini

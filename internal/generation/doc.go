// Package generation defines the boundary between the poetry service and
// external LLM providers. The Generator interface is the port implemented by
// each provider adapter under internal/platform; this package also owns the
// provider error vocabulary and the coercion of raw model output into a
// domain.Poem.
package generation

// Package service contains the application use cases. PoetryService composes
// the prompt builder with a generation.Generator to turn a genre and theme
// into a Poem, and is the layer the HTTP handlers depend on.
package service

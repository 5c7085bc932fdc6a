// Package ollama implements generation.Generator against a local Ollama
// server using github.com/JexSrs/go-ollama.
//
// The client library takes no context, so each call runs in its own
// goroutine and the generator returns as soon as the context is done.
package ollama

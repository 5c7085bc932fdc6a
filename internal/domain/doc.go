// Package domain contains the value objects of the poetry service: the
// inbound PoemRequest and the generated Poem. Both are transient values that
// live for a single request/response cycle and are never persisted.
package domain

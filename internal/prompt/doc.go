// Package prompt renders the text sent to language-model providers.
//
// The haiku template is parsed once at package initialization and shared
// read-only by all requests. Values are substituted verbatim: no escaping,
// trimming or length limits are applied here.
package prompt

// Package api handles incoming HTTP requests, request validation and response
// formatting. It translates HTTP concerns to PoetryService calls and maps
// service errors to RFC 7807 problem details without leaking provider
// internals to clients.
package api

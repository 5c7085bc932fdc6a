// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to application settings needed by different components while keeping
// configuration details separate from business logic.
//
// Environment variables use the POETRY_ prefix with dots replaced by
// underscores, e.g. POETRY_LLM_PROVIDER for llm.provider.
package config

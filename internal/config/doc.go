// Package config handles configuration loading, parsing, and validation
// from various sources (a .env file, environment variables, an optional
// config file). It provides type-safe access to server, provider, and
// generation settings while keeping configuration details separate from
// the generation logic.
package config

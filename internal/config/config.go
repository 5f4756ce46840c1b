package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Provider   ProviderConfig   `mapstructure:"provider"   validate:"required"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port              int           `mapstructure:"port"                validate:"required,gt=0,lt=65536"`
	LogLevel          string        `mapstructure:"log_level"           validate:"required,oneof=debug info warn error"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" validate:"gt=0"`
	// WriteTimeout has to outlive a full sequential fan-out.
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// ProviderConfig selects and configures the external image-generation provider.
//
// APIToken is optional. Leaving it empty is a valid configuration that puts
// the service into demo mode, where placeholder images are returned and no
// network call is ever made.
type ProviderConfig struct {
	Kind         string        `mapstructure:"kind"          validate:"required,oneof=replicate gemini"`
	APIToken     string        `mapstructure:"api_token"`
	Model        string        `mapstructure:"model"`
	BaseURL      string        `mapstructure:"base_url"      validate:"omitempty,url"`
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"gt=0"`
}

// DemoMode reports whether no provider credential is configured.
func (p ProviderConfig) DemoMode() bool {
	return p.APIToken == ""
}

// GenerationConfig controls how prompts are fanned out to the provider.
// InterCallDelay must be positive: the sequential strategy always pauses
// between calls.
type GenerationConfig struct {
	Strategy       string        `mapstructure:"strategy"         validate:"required,oneof=parallel sequential"`
	InterCallDelay time.Duration `mapstructure:"inter_call_delay" validate:"gt=0"`
	CallTimeout    time.Duration `mapstructure:"call_timeout"     validate:"gt=0"`
	AspectRatio    string        `mapstructure:"aspect_ratio"     validate:"required"`
	OutputFormat   string        `mapstructure:"output_format"    validate:"required,oneof=webp png jpg jpeg"`
	OutputQuality  int           `mapstructure:"output_quality"   validate:"gte=0,lte=100"`
}

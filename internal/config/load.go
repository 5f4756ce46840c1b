package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. TRIQUETRA_SERVER_PORT or TRIQUETRA_PROVIDER_API_TOKEN.
const EnvPrefix = "TRIQUETRA"

// Load configuration from a .env file, environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{DotEnvPath: ".env"})
}

// LoadOptions customizes where Load looks for its inputs.
type LoadOptions struct {
	// DotEnvPath is loaded into the process environment before viper reads it.
	// A missing file is ignored. Empty disables .env loading.
	DotEnvPath string

	// ConfigFile, if set, is read instead of searching for config.yaml.
	ConfigFile string
}

// LoadWithOptions is Load with explicit file locations.
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	if opts.DotEnvPath != "" {
		// godotenv never overrides variables that are already set.
		if err := godotenv.Load(opts.DotEnvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", opts.DotEnvPath, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so every key
	// without a default is bound explicitly.
	for _, key := range []string{"provider.api_token", "provider.model", "provider.base_url"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 5*time.Minute)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("provider.kind", "replicate")
	v.SetDefault("provider.poll_interval", time.Second)

	v.SetDefault("generation.strategy", "parallel")
	v.SetDefault("generation.inter_call_delay", time.Second)
	v.SetDefault("generation.call_timeout", 60*time.Second)
	v.SetDefault("generation.aspect_ratio", "1:1")
	v.SetDefault("generation.output_format", "webp")
	v.SetDefault("generation.output_quality", 90)
}

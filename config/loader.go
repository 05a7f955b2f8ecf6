package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultEnvPrefix is the prefix of environment overrides, e.g. YIELDGATE_BASE_URL.
const DefaultEnvPrefix = "YIELDGATE"

// LoadOptions selects the sources Load reads.
type LoadOptions struct {
	// File is an optional config file (yaml, json, toml). Empty means none.
	File string

	// EnvFiles are dotenv files loaded into the process environment first.
	// Missing files are ignored. Empty means ".env".
	EnvFiles []string

	// EnvPrefix defaults to DefaultEnvPrefix.
	EnvPrefix string
}

// Load reads configuration from multiple sources in priority order:
// 1. Default values
// 2. Configuration file (optional)
// 3. Environment variables, after dotenv files were applied
func Load(opts LoadOptions) (Config, error) {
	if err := loadEnvFiles(opts.EnvFiles); err != nil {
		return Config{}, err
	}

	v := viper.New()

	// 1. Defaults
	setDefaults(v)

	// 2. Config file
	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", opts.File, err)
		}
	}

	// 3. Environment
	prefix := opts.EnvPrefix
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Headers == nil {
		cfg.Headers = map[string]string{}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadEnvFiles applies dotenv files without overriding variables that are
// already set. A missing file is not an error: .env rarely exists in production.
func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load env file %s: %w", file, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("retry_count", d.RetryCount)
	v.SetDefault("retry_delay", d.RetryDelay)
	v.SetDefault("max_retry_delay", d.MaxRetryDelay)
	v.SetDefault("api_key", "")
	v.SetDefault("partner_id", "")
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("headers", map[string]string{})
	v.SetDefault("rate_limit", 0.0)
	v.SetDefault("rate_burst", 0)
	v.SetDefault("cache_size", d.CacheSize)
	v.SetDefault("cache_ttl", d.CacheTTL)
	v.SetDefault("debug", false)
}

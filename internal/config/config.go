package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mikey/snooker/pkg/snooker"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance from the first config.yaml found
// in the standard search paths
func New() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/snooker/")
	v.AddConfigPath("$HOME/.snooker")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewWithFile creates a new configuration instance from an explicit file
func NewWithFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func newViper() *viper.Viper {
	v := NewEmptyViper()

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("SNOOKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Rule defaults
	rules := snooker.DefaultConfig()
	v.SetDefault("rules.spam_keywords", rules.SpamKeywords)
	v.SetDefault("rules.spam_phrases", rules.SpamPhrases)
	v.SetDefault("rules.spam_leading_words", rules.SpamLeadingWords)
	v.SetDefault("rules.spam_tlds", rules.SpamTLDs)
	v.SetDefault("rules.min_body_length", rules.MinBodyLength)
	v.SetDefault("rules.long_url_length", rules.LongURLLength)
	v.SetDefault("rules.consonant_run_length", rules.ConsonantRunLength)
	v.SetDefault("rules.history_cap", rules.HistoryCap)

	// Server defaults
	v.SetDefault("server.filter_type", "http")
	v.SetDefault("server.listen_address", "0.0.0.0:8025")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.body_limit", 1024*1024)
	v.SetDefault("server.max_body_size", 65536)

	// Spam defaults
	v.SetDefault("spam.trusted_domains", []string{})

	// History defaults
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.record", true)
	v.SetDefault("history.type", "memory")
	v.SetDefault("history.ttl", "720h")
	v.SetDefault("history.cleanup_frequency", "1h")
	v.SetDefault("history.max_bodies", 20)
	v.SetDefault("history.sqlite_path", "/data/snooker_history.db")
	v.SetDefault("history.mysql_dsn", "user:password@tcp(localhost:3306)/snooker?parseTime=true")

	// CLI defaults
	v.SetDefault("cli.verbose", false)
	v.SetDefault("cli.format", "text")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 15)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 28)
	v.SetDefault("logging.compress", true)
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	d, err := time.ParseDuration(c.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return d, nil
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mikey/snooker/pkg/snooker"
)

// ServerConfig represents the configuration of the comment filter front-end
type ServerConfig struct {
	FilterType    string
	ListenAddress string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	BodyLimit     int
	MaxBodySize   int
}

// HistoryConfig represents the configuration of the comment history store
type HistoryConfig struct {
	Enabled          bool
	Record           bool
	Type             string
	TTL              time.Duration
	CleanupFrequency time.Duration
	MaxBodies        int
	SQLitePath       string
	MySQLDSN         string
}

// GetRules returns the rule configuration. A list explicitly emptied in the
// config file disables the rules that use it.
func (c *Config) GetRules() snooker.Config {
	return snooker.Config{
		SpamKeywords:       c.getList("rules.spam_keywords"),
		SpamPhrases:        c.getList("rules.spam_phrases"),
		SpamLeadingWords:   c.getList("rules.spam_leading_words"),
		SpamTLDs:           c.getList("rules.spam_tlds"),
		MinBodyLength:      c.GetInt("rules.min_body_length"),
		LongURLLength:      c.GetInt("rules.long_url_length"),
		ConsonantRunLength: c.GetInt("rules.consonant_run_length"),
		HistoryCap:         c.GetInt("rules.history_cap"),
	}
}

// getList never returns nil, so an empty list is not mistaken for "unset".
// Plain strings, as set through SNOOKER_* variables, are comma separated so
// that phrases keep their spaces.
func (c *Config) getList(key string) []string {
	raw, ok := c.v.Get(key).(string)
	if !ok {
		list := c.GetStringSlice(key)
		if list == nil {
			return []string{}
		}
		return list
	}

	list := []string{}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

// GetServer returns the server configuration
func (c *Config) GetServer() (ServerConfig, error) {
	readTimeout, err := c.GetDuration("server.read_timeout")
	if err != nil {
		return ServerConfig{}, err
	}
	writeTimeout, err := c.GetDuration("server.write_timeout")
	if err != nil {
		return ServerConfig{}, err
	}
	return ServerConfig{
		FilterType:    c.GetString("server.filter_type"),
		ListenAddress: c.GetString("server.listen_address"),
		ReadTimeout:   readTimeout,
		WriteTimeout:  writeTimeout,
		BodyLimit:     c.GetInt("server.body_limit"),
		MaxBodySize:   c.GetInt("server.max_body_size"),
	}, nil
}

// GetHistory returns the history store configuration
func (c *Config) GetHistory() (HistoryConfig, error) {
	ttl, err := c.GetDuration("history.ttl")
	if err != nil {
		return HistoryConfig{}, err
	}
	cleanup, err := c.GetDuration("history.cleanup_frequency")
	if err != nil {
		return HistoryConfig{}, err
	}
	if cleanup <= 0 {
		return HistoryConfig{}, fmt.Errorf("history.cleanup_frequency must be positive, got %s", cleanup)
	}
	return HistoryConfig{
		Enabled:          c.GetBool("history.enabled"),
		Record:           c.GetBool("history.record"),
		Type:             c.GetString("history.type"),
		TTL:              ttl,
		CleanupFrequency: cleanup,
		MaxBodies:        c.GetInt("history.max_bodies"),
		SQLitePath:       c.GetString("history.sqlite_path"),
		MySQLDSN:         c.GetString("history.mysql_dsn"),
	}, nil
}

// GetTrustedDomains returns the trusted commenter domains and addresses
func (c *Config) GetTrustedDomains() []string {
	return c.getList("spam.trusted_domains")
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	defaultPort               = 9000
	defaultMetricsPort        = 9002
	defaultRemotePageSize     = 100
	defaultCredentialCheckSec = 5
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	MetricsPort int    `toml:"metrics_port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// local key-value store, in process memory when redis host is empty
	RedisHost        string `toml:"redis_host"`
	RedisPort        string `toml:"redis_port"`
	LocalCacheSizeMB int    `toml:"local_cache_size_mb"`
	// remote record store, in process memory when postgres host is empty
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	RemotePageSize int    `toml:"remote_page_size"`
	// profiles
	DesignatedEmail           string `toml:"designated_email"`
	CredentialCheckURL        string `toml:"credential_check_url"`
	CredentialCheckTimeoutSec int    `toml:"credential_check_timeout_sec"`
	TimeZone                  string `toml:"time_zone"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the config of the env from the TOML file at path, and fills in
// defaults for the values not set.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode toml config [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] not found in [%s]", env, path)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.MetricsPort == 0 {
		c.MetricsPort = defaultMetricsPort
	}
	if c.RemotePageSize <= 0 {
		c.RemotePageSize = defaultRemotePageSize
	}
	if c.CredentialCheckTimeoutSec <= 0 {
		c.CredentialCheckTimeoutSec = defaultCredentialCheckSec
	}
	if c.RedisHost != "" && c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.PostgresHost != "" && c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
}

func (c *Config) validate() error {
	if c.DesignatedEmail == "" {
		return errors.New("designated_email not set")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

func (c *Config) CredentialCheckTimeout() time.Duration {
	return time.Duration(c.CredentialCheckTimeoutSec) * time.Second
}

// Location is the time zone workout days are grouped and sorted in. Empty
// means the local time zone of the host.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load time zone [%s]: %w", c.TimeZone, err)
	}
	return loc, nil
}

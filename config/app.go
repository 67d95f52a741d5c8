package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. SUGGEST_PORT.
const EnvPrefix = "SUGGEST"

// AppConfig holds process-level configuration for the server and CLI.
type AppConfig struct {
	Host    string `mapstructure:"host"`
	Port    string `mapstructure:"port"`
	DataDir string `mapstructure:"data_dir"`

	Recent struct {
		Backend  string `mapstructure:"backend"` // memory, pebble, sqlite or disabled
		Path     string `mapstructure:"path"`
		Capacity int    `mapstructure:"capacity"`
	} `mapstructure:"recent"`

	RateLimit struct {
		RequestsPerSecond float64 `mapstructure:"requests_per_second"`
		Burst             int     `mapstructure:"burst"`
	} `mapstructure:"rate_limit"`

	MaxRequestBytes int64 `mapstructure:"max_request_bytes"`

	Highlight struct {
		Open  string `mapstructure:"open"`
		Close string `mapstructure:"close"`
	} `mapstructure:"highlight"`

	Watch struct {
		Enabled  bool          `mapstructure:"enabled"`
		Debounce time.Duration `mapstructure:"debounce"`
	} `mapstructure:"watch"`

	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("host", "localhost")
	v.SetDefault("port", "8080")
	v.SetDefault("data_dir", "./data")
	v.SetDefault("recent.backend", "pebble")
	v.SetDefault("recent.path", "")
	v.SetDefault("recent.capacity", DefaultRecentCapacity)
	v.SetDefault("rate_limit.requests_per_second", 20.0)
	v.SetDefault("rate_limit.burst", 40)
	v.SetDefault("max_request_bytes", int64(32<<20))
	v.SetDefault("highlight.open", "<mark>")
	v.SetDefault("highlight.close", "</mark>")
	v.SetDefault("watch.enabled", true)
	v.SetDefault("watch.debounce", 300*time.Millisecond)
	v.SetDefault("shutdown_timeout", 10*time.Second)
}

// NewViper returns a viper instance with defaults and environment overrides.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadAppConfig decodes v into an AppConfig and fills derived values.
func LoadAppConfig(v *viper.Viper) (*AppConfig, error) {
	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	cfg.Recent.Backend = strings.ToLower(strings.TrimSpace(cfg.Recent.Backend))
	if cfg.Recent.Backend == "sqlite3" {
		cfg.Recent.Backend = "sqlite"
	}
	if cfg.Recent.Path == "" {
		switch cfg.Recent.Backend {
		case "pebble":
			cfg.Recent.Path = filepath.Join(cfg.DataDir, "recent.pebble")
		case "sqlite":
			cfg.Recent.Path = filepath.Join(cfg.DataDir, "recent.db")
		}
	}
	if cfg.Recent.Capacity <= 0 {
		cfg.Recent.Capacity = DefaultRecentCapacity
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be corrected silently.
func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("rate_limit.requests_per_second must not be negative")
	}
	if c.MaxRequestBytes <= 0 {
		return fmt.Errorf("max_request_bytes must be positive")
	}
	switch c.Recent.Backend {
	case "memory", "pebble", "sqlite", "disabled":
	default:
		return fmt.Errorf("unknown recent.backend %q", c.Recent.Backend)
	}
	return nil
}

// Addr returns host:port for the HTTP listener.
func (c *AppConfig) Addr() string {
	return c.Host + ":" + c.Port
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/JaimeStill/bizz/internal/seo"
	"github.com/JaimeStill/bizz/pkg/auth"
	"github.com/JaimeStill/bizz/pkg/cache"
	"github.com/JaimeStill/bizz/pkg/database"
	"github.com/JaimeStill/bizz/pkg/events"
	"github.com/JaimeStill/bizz/pkg/storage"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	DotEnvFile = ".env"

	EnvBizzEnv             = "BIZZ_ENV"
	EnvBizzShutdownTimeout = "BIZZ_SHUTDOWN_TIMEOUT"
	EnvBizzVersion         = "BIZZ_VERSION"
)

var databaseEnv = &database.Env{
	Host:             "BIZZ_DB_HOST",
	Port:             "BIZZ_DB_PORT",
	Name:             "BIZZ_DB_NAME",
	User:             "BIZZ_DB_USER",
	Password:         "BIZZ_DB_PASSWORD",
	SSLMode:          "BIZZ_DB_SSL_MODE",
	ApplicationName:  "BIZZ_DB_APPLICATION_NAME",
	MaxOpenConns:     "BIZZ_DB_MAX_OPEN_CONNS",
	MaxIdleConns:     "BIZZ_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime:  "BIZZ_DB_CONN_MAX_LIFETIME",
	ConnTimeout:      "BIZZ_DB_CONN_TIMEOUT",
	StatementTimeout: "BIZZ_DB_STATEMENT_TIMEOUT",
	ConnectAttempts:  "BIZZ_DB_CONNECT_ATTEMPTS",
}

var storageEnv = &storage.Env{
	ContainerName:    "BIZZ_STORAGE_CONTAINER_NAME",
	ConnectionString: "BIZZ_STORAGE_CONNECTION_STRING",
	AccountURL:       "BIZZ_STORAGE_ACCOUNT_URL",
	MaxListSize:      "BIZZ_STORAGE_MAX_LIST_SIZE",
	MaxRetries:       "BIZZ_STORAGE_MAX_RETRIES",
}

var cacheEnv = &cache.Env{
	Enabled:  "BIZZ_CACHE_ENABLED",
	URL:      "BIZZ_CACHE_URL",
	Password: "BIZZ_CACHE_PASSWORD",
	DB:       "BIZZ_CACHE_DB",
	PoolSize: "BIZZ_CACHE_POOL_SIZE",
	TTL:      "BIZZ_CACHE_TTL",
	Prefix:   "BIZZ_CACHE_PREFIX",
}

var eventsEnv = &events.Env{
	Enabled:  "BIZZ_EVENTS_ENABLED",
	URL:      "BIZZ_EVENTS_URL",
	Exchange: "BIZZ_EVENTS_EXCHANGE",
}

var authEnv = &auth.Env{
	Enabled:       "BIZZ_AUTH_ENABLED",
	Issuer:        "BIZZ_AUTH_ISSUER",
	ClientID:      "BIZZ_AUTH_CLIENT_ID",
	ReviewerClaim: "BIZZ_AUTH_REVIEWER_CLAIM",
}

var siteEnv = &seo.Env{
	Name:          "BIZZ_SITE_NAME",
	URL:           "BIZZ_SITE_URL",
	Description:   "BIZZ_SITE_DESCRIPTION",
	OGImage:       "BIZZ_SITE_OG_IMAGE",
	TwitterHandle: "BIZZ_SITE_TWITTER_HANDLE",
	Locale:        "BIZZ_SITE_LOCALE",
}

// Config is the root configuration for the directory service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	Cache           cache.Config    `toml:"cache"`
	Events          events.Config   `toml:"events"`
	Auth            auth.Config     `toml:"auth"`
	API             APIConfig       `toml:"api"`
	Site            seo.Config      `toml:"site"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the BIZZ_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvBizzEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. A .env file in the working directory is loaded
// into the process environment first; variables already set take precedence.
// If no config.toml exists, defaults and environment variables provide all
// configuration.
func Load() (*Config, error) {
	cfg, err := loadFiles()
	if err != nil {
		return nil, err
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// LoadDatabase resolves only the database section from the same sources as
// Load, so tools that touch the schema do not need storage or auth settings.
func LoadDatabase() (*database.Config, error) {
	cfg, err := loadFiles()
	if err != nil {
		return nil, err
	}

	if err := cfg.Database.Finalize(databaseEnv); err != nil {
		return nil, fmt.Errorf("finalize database config: %w", err)
	}

	return &cfg.Database, nil
}

func loadFiles() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Cache.Merge(&overlay.Cache)
	c.Events.Merge(&overlay.Events)
	c.Auth.Merge(&overlay.Auth)
	c.API.Merge(&overlay.API)
	c.Site.Merge(&overlay.Site)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Cache.Finalize(cacheEnv); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := c.Events.Finalize(eventsEnv); err != nil {
		return fmt.Errorf("events: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Site.Finalize(siteEnv); err != nil {
		return fmt.Errorf("site: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvBizzShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvBizzVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func loadDotEnv() error {
	if _, err := os.Stat(DotEnvFile); err != nil {
		return nil
	}
	if err := godotenv.Load(DotEnvFile); err != nil {
		return fmt.Errorf("load %s: %w", DotEnvFile, err)
	}
	return nil
}

func overlayPath() string {
	if env := os.Getenv(EnvBizzEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

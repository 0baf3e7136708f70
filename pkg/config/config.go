package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "harvestly"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Marketplace  MarketplaceConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"HARVESTLY_APP_ENV" required:"true"`
	Port         string `envconfig:"HARVESTLY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"HARVESTLY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HARVESTLY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"HARVESTLY_DB_DSN"`
	Driver string `envconfig:"HARVESTLY_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"HARVESTLY_DB_HOST"`
	Port     int    `envconfig:"HARVESTLY_DB_PORT" default:"5432"`
	User     string `envconfig:"HARVESTLY_DB_USER"`
	Password string `envconfig:"HARVESTLY_DB_PASSWORD"`
	Name     string `envconfig:"HARVESTLY_DB_NAME"`
	SSLMode  string `envconfig:"HARVESTLY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HARVESTLY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HARVESTLY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HARVESTLY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HARVESTLY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN assembles a postgres DSN from discrete parts when one is not provided.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("db config requires either HARVESTLY_DB_DSN or host/user/name parts")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"HARVESTLY_REDIS_URL"`
	Address      string        `envconfig:"HARVESTLY_REDIS_ADDR"`
	Password     string        `envconfig:"HARVESTLY_REDIS_PASSWORD"`
	DB           int           `envconfig:"HARVESTLY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HARVESTLY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HARVESTLY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HARVESTLY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HARVESTLY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HARVESTLY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// MarketplaceConfig tunes the browse endpoint. The ranking formula itself is
// fixed in internal/marketplace; only fetch-layer behavior is configurable.
type MarketplaceConfig struct {
	SnapshotTTL  time.Duration `envconfig:"HARVESTLY_MARKETPLACE_SNAPSHOT_TTL" default:"30s"`
	DefaultLimit int           `envconfig:"HARVESTLY_MARKETPLACE_DEFAULT_LIMIT" default:"50"`
	MaxLimit     int           `envconfig:"HARVESTLY_MARKETPLACE_MAX_LIMIT" default:"200"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"HARVESTLY_FEATURE_AUTO_MIGRATE" default:"false"`
}

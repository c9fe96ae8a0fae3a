package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Idempotency IdempotencyConfig `yaml:"idempotency"`
	Culops      CulopsConfig      `yaml:"culops"`
	Plans       PlansConfig       `yaml:"plans"`
	Pantry      PantryConfig      `yaml:"pantry"`
	Log         LogConfig         `yaml:"log"`
	Deploy      DeployConfig      `yaml:"deploy"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// MaxBodyBytes caps request bodies; 0 disables the cap.
	MaxBodyBytes    int64         `yaml:"max_body_bytes" env:"SERVER_MAX_BODY_BYTES" env-default:"33554432"`
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// DatabaseConfig holds PostgreSQL connection and pool settings.
// The pool keeps PoolSize connections open and may grow by MaxOverflow.
type DatabaseConfig struct {
	User               string        `yaml:"user"              env:"DB_USER"              env-required:"true"`
	Password           string        `yaml:"password"          env:"DB_PASSWORD"`
	Host               string        `yaml:"host"              env:"DB_HOST"              env-default:"localhost"`
	Port               int           `yaml:"port"              env:"DB_PORT"              env-default:"5432"`
	Name               string        `yaml:"name"              env:"DB_NAME"              env-required:"true"`
	SSLMode            string        `yaml:"sslmode"           env:"DB_SSLMODE"           env-default:"disable"`
	PoolSize           int32         `yaml:"pool_size"         env:"DB_POOL_SIZE"         env-default:"5"`
	MaxOverflow        int32         `yaml:"max_overflow"      env:"DB_MAX_OVERFLOW"      env-default:"10"`
	PoolTimeoutSeconds int           `yaml:"pool_timeout"      env:"DB_POOL_TIMEOUT"      env-default:"30"`
	StatementTimeout   time.Duration `yaml:"statement_timeout" env:"DB_STATEMENT_TIMEOUT" env-default:"30s"`
	MaxConnLifetime    time.Duration `yaml:"max_conn_lifetime" env:"DB_MAX_CONN_LIFETIME" env-default:"1h"`
}

// DSN builds a postgres:// connection URL from the individual settings.
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else {
		u.User = url.User(c.User)
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// MaxConns is the hard cap on open connections.
func (c DatabaseConfig) MaxConns() int32 { return c.PoolSize + c.MaxOverflow }

// PoolTimeout is how long a caller waits to check a connection out.
func (c DatabaseConfig) PoolTimeout() time.Duration {
	return time.Duration(c.PoolTimeoutSeconds) * time.Second
}

// IdempotencyConfig holds idempotency key settings.
type IdempotencyConfig struct {
	KeyTTLMinutes int `yaml:"key_ttl_minutes" env:"IDEMPOTENCY_KEY_TTL_MINUTES" env-default:"1440"`
}

// TTL returns the key lifetime.
func (c IdempotencyConfig) TTL() time.Duration {
	return time.Duration(c.KeyTTLMinutes) * time.Minute
}

// CulopsConfig holds settings for the culinary-operations API client.
// APITokenFile is read only when APIToken is empty.
type CulopsConfig struct {
	BaseURL      string        `yaml:"base_url"       env:"CULOPS_BASE_URL"       env-required:"true"`
	APIToken     string        `yaml:"api_token"      env:"CULOPS_API_TOKEN"`
	APITokenFile string        `yaml:"api_token_file" env:"CULOPS_API_TOKEN_FILE"`
	Timeout      time.Duration `yaml:"timeout"        env:"CULOPS_TIMEOUT"        env-default:"15s"`
	PageSize     int           `yaml:"page_size"      env:"CULOPS_PAGE_SIZE"      env-default:"100"`
}

// PlansConfig maps partners to plan classification strategies.
// StrategiesRaw has the form "partner-a:meal_kit,partner-b:family_tier".
type PlansConfig struct {
	StrategiesRaw string `yaml:"strategies" env:"PLAN_STRATEGIES" env-default:""`

	// Strategies is parsed from StrategiesRaw during validation.
	Strategies map[string]string `yaml:"-" env:"-"`
}

// PantryConfig holds pantry read settings.
type PantryConfig struct {
	DefaultPageSize int `yaml:"default_page_size" env:"PANTRY_DEFAULT_PAGE_SIZE" env-default:"50"`
	MaxPageSize     int `yaml:"max_page_size"     env:"PANTRY_MAX_PAGE_SIZE"     env-default:"500"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// DeployConfig describes the deployment environment.
type DeployConfig struct {
	Environment string `yaml:"environment" env:"DEPLOY_ENV" env-default:"production"`
}

// IsProduction reports whether the service runs in production.
// SQL statement echo is only enabled outside production.
func (c DeployConfig) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

// ParseStrategies parses "partner:strategy" pairs separated by commas.
// An empty string returns an empty map.
func ParseStrategies(raw string) (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		partner, strategy, ok := strings.Cut(pair, ":")
		partner, strategy = strings.TrimSpace(partner), strings.TrimSpace(strategy)
		if !ok || partner == "" || strategy == "" {
			return nil, fmt.Errorf("invalid pair %q (want partner:strategy)", pair)
		}
		if _, dup := out[partner]; dup {
			return nil, fmt.Errorf("partner %q listed twice", partner)
		}
		out[partner] = strategy
	}
	return out, nil
}

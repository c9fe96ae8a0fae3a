package config

import (
	"fmt"
	"net/url"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Database.validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if c.Idempotency.KeyTTLMinutes <= 0 {
		return fmt.Errorf("idempotency.key_ttl_minutes must be > 0 (got %d)", c.Idempotency.KeyTTLMinutes)
	}

	if u, err := url.Parse(c.Culops.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("culops.base_url must be an absolute URL (got %q)", c.Culops.BaseURL)
	}
	if c.Culops.PageSize <= 0 {
		return fmt.Errorf("culops.page_size must be > 0 (got %d)", c.Culops.PageSize)
	}

	if c.Pantry.DefaultPageSize <= 0 || c.Pantry.DefaultPageSize > c.Pantry.MaxPageSize {
		return fmt.Errorf("pantry.default_page_size must be in 1..%d (got %d)", c.Pantry.MaxPageSize, c.Pantry.DefaultPageSize)
	}

	strategies, err := ParseStrategies(c.Plans.StrategiesRaw)
	if err != nil {
		return fmt.Errorf("plans.strategies: %w", err)
	}
	c.Plans.Strategies = strategies

	return nil
}

func (d *DatabaseConfig) validate() error {
	if d.PoolSize <= 0 {
		return fmt.Errorf("pool_size must be > 0 (got %d)", d.PoolSize)
	}
	if d.MaxOverflow < 0 {
		return fmt.Errorf("max_overflow must be >= 0 (got %d)", d.MaxOverflow)
	}
	if d.PoolTimeoutSeconds <= 0 {
		return fmt.Errorf("pool_timeout must be > 0 (got %d)", d.PoolTimeoutSeconds)
	}
	return nil
}

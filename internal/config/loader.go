package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if KWSCOUT_CONFIG is set
//  3. env (prefix KWSCOUT_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("KWSCOUT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: KWSCOUT_ADDR, KWSCOUT_SERPAPI_KEY, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("KWSCOUT_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "kwscout_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxResults <= 0:
		return fmt.Errorf("%w: max_results must be positive", ErrInvalidConfig)
	case c.FetchWorkers <= 0:
		return fmt.Errorf("%w: fetch_workers must be positive", ErrInvalidConfig)
	case c.FetchTimeoutMS <= 0:
		return fmt.Errorf("%w: fetch_timeout_ms must be positive", ErrInvalidConfig)
	case c.ResearchDeadlineMS <= 0:
		return fmt.Errorf("%w: research_deadline_ms must be positive", ErrInvalidConfig)
	case c.FetchRetries < 0:
		return fmt.Errorf("%w: fetch_retries must not be negative", ErrInvalidConfig)
	}
	return nil
}

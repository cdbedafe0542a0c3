// Package config resolves process configuration once at startup: defaults,
// then the optional YAML config file, then environment variables. The
// result is immutable for the rest of the run.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"spellfix/internal/envutil"
)

const (
	DefaultEndpoint      = "http://127.0.0.1:8081/v2/check"
	DefaultLanguage      = "en-US"
	DefaultTimeout       = 2800 * time.Millisecond
	DefaultMaxChunkChars = 1200
)

// DefaultBrands are always normalized; the config file and SPELLFIX_BRANDS
// append to this list.
var DefaultBrands = []string{"SpellFix"}

type Config struct {
	Endpoint      string
	Language      string
	Timeout       time.Duration
	MaxChunkChars int
	Brands        []string
	Debug         bool
}

type fileConfig struct {
	Endpoint       string   `yaml:"endpoint"`
	Language       string   `yaml:"language"`
	TimeoutSeconds float64  `yaml:"timeout_seconds"`
	MaxChunkChars  int      `yaml:"max_chunk_chars"`
	Brands         []string `yaml:"brands"`
}

// Load builds the configuration. A missing config file is fine; a malformed
// one is an error so a typo never silently reverts to defaults.
func Load(path string) (Config, error) {
	cfg := Config{
		Endpoint:      DefaultEndpoint,
		Language:      DefaultLanguage,
		Timeout:       DefaultTimeout,
		MaxChunkChars: DefaultMaxChunkChars,
		Brands:        append([]string(nil), DefaultBrands...),
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			var fc fileConfig
			if err := yaml.Unmarshal(data, &fc); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
			applyFile(&cfg, fc)
		case !os.IsNotExist(err):
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, fc fileConfig) {
	if strings.TrimSpace(fc.Endpoint) != "" {
		cfg.Endpoint = strings.TrimSpace(fc.Endpoint)
	}
	if strings.TrimSpace(fc.Language) != "" {
		cfg.Language = strings.TrimSpace(fc.Language)
	}
	if fc.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(fc.TimeoutSeconds * float64(time.Second))
	}
	if fc.MaxChunkChars > 0 {
		cfg.MaxChunkChars = fc.MaxChunkChars
	}
	cfg.Brands = appendBrands(cfg.Brands, fc.Brands)
}

func applyEnv(cfg *Config) {
	cfg.Endpoint = envutil.String("SPELLFIX_LT_URL", cfg.Endpoint)
	cfg.Language = envutil.String("SPELLFIX_LANG", cfg.Language)
	cfg.Timeout = envutil.Seconds("SPELLFIX_TIMEOUT", cfg.Timeout)
	cfg.MaxChunkChars = envutil.Int("SPELLFIX_MAX_CHUNK", cfg.MaxChunkChars)
	cfg.Brands = appendBrands(cfg.Brands, envutil.List("SPELLFIX_BRANDS"))
	if envutil.Bool("SPELLFIX_DEBUG") {
		cfg.Debug = true
	}
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return fmt.Errorf("endpoint must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxChunkChars <= 0 {
		return fmt.Errorf("max chunk chars must be positive, got %d", c.MaxChunkChars)
	}
	return nil
}

func appendBrands(existing, extra []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, b := range existing {
		seen[strings.ToLower(b)] = true
	}
	for _, b := range extra {
		b = strings.TrimSpace(b)
		if b == "" || seen[strings.ToLower(b)] {
			continue
		}
		existing = append(existing, b)
		seen[strings.ToLower(b)] = true
	}
	return existing
}

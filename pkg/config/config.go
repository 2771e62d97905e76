package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/prometheus/common/model"
	"github.com/prometheus/common/promslog"

	"github.com/rhobs/finance-mcp/pkg/finance"
)

// Config holds finance-mcp server configuration
type Config struct {
	// Listen is the address for HTTP mode. Empty means stdio.
	// Example: ":9100"
	Listen string `toml:"listen,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	// Default: "info"
	LogLevel string `toml:"log_level,omitempty"`

	// LogFormat is logfmt or json.
	// Default: "logfmt"
	LogFormat string `toml:"log_format,omitempty"`

	// ProviderURL is the Yahoo Finance query host.
	// Default: "https://query1.finance.yahoo.com"
	ProviderURL string `toml:"provider_url,omitempty"`

	// CookieURL is visited once per session to obtain the consent cookie.
	// Default: "https://fc.yahoo.com"
	CookieURL string `toml:"cookie_url,omitempty"`

	// Timeout bounds a single provider request, e.g. "30s" or "2m".
	// Set to "0s" to disable.
	// Default: "30s"
	Timeout string `toml:"timeout,omitempty"`

	// Insecure controls whether to skip TLS certificate verification.
	// Default: false (verify certificates)
	Insecure bool `toml:"insecure,omitempty"`

	// ProxyURL routes provider requests through an HTTP proxy
	ProxyURL string `toml:"proxy_url,omitempty"`

	// UserAgent is sent with every provider request
	UserAgent string `toml:"user_agent,omitempty"`

	// DefaultSymbol is the ticker advertised as a static resource.
	// Default: "AAPL"
	DefaultSymbol string `toml:"default_symbol,omitempty"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "logfmt",
		ProviderURL:   finance.DefaultBaseURL,
		CookieURL:     finance.DefaultCookieURL,
		Timeout:       model.Duration(finance.DefaultTimeout).String(),
		DefaultSymbol: "AAPL",
	}
}

// Load reads a TOML file on top of the defaults.
// Unknown keys are rejected so typos do not go unnoticed.
func Load(path string) (*Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("unknown keys in config file %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *Config) Validate() error {
	var errs []error

	if c.LogLevel != "" {
		if err := promslog.NewLevel().Set(c.LogLevel); err != nil {
			errs = append(errs, fmt.Errorf("invalid log_level: %w", err))
		}
	}
	if c.LogFormat != "" {
		if err := promslog.NewFormat().Set(c.LogFormat); err != nil {
			errs = append(errs, fmt.Errorf("invalid log_format: %w", err))
		}
	}

	for name, raw := range map[string]string{
		"provider_url": c.ProviderURL,
		"cookie_url":   c.CookieURL,
		"proxy_url":    c.ProxyURL,
	} {
		if raw == "" {
			continue
		}
		if err := validateURL(raw); err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", name, err))
		}
	}

	if _, err := c.GetTimeout(); err != nil {
		errs = append(errs, err)
	}

	if c.DefaultSymbol != "" && strings.ContainsAny(c.DefaultSymbol, "/:?# ") {
		errs = append(errs, fmt.Errorf("invalid default_symbol %q", c.DefaultSymbol))
	}

	return errors.Join(errs...)
}

// GetTimeout returns the parsed provider timeout
func (c *Config) GetTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return finance.DefaultTimeout, nil
	}
	d, err := model.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout: %w", err)
	}
	return time.Duration(d), nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (ORIENT_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: ORIENT_LIBRARIAN_DB -> librarian_db, etc.
	if err := k.Load(env.Provider("ORIENT_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "ORIENT_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration once at startup. A malformed
// registry entry fails here with a clear diagnostic instead of
// surfacing as a probe-time "not found".
func (c *Config) Validate() error {
	for name, path := range c.Repos {
		if name == "" {
			return fmt.Errorf("repos: empty repository name")
		}
		if path == "" {
			return fmt.Errorf("repos.%s: empty path", name)
		}
	}

	for name, raw := range c.Services {
		if name == "" {
			return fmt.Errorf("services: empty service name")
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("services.%s: invalid URL %q: %w", name, raw, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("services.%s: URL %q must use http or https", name, raw)
		}
		if u.Host == "" {
			return fmt.Errorf("services.%s: URL %q has no host", name, raw)
		}
	}

	for key, path := range c.KeyFiles {
		if key == "" {
			return fmt.Errorf("key_files: empty key")
		}
		if path == "" {
			return fmt.Errorf("key_files.%s: empty path", key)
		}
	}

	if c.Scan.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("scan.http_timeout_seconds must be positive")
	}
	if c.Scan.GitTimeoutSeconds <= 0 {
		return fmt.Errorf("scan.git_timeout_seconds must be positive")
	}
	if c.Scan.StoreTimeoutSeconds <= 0 {
		return fmt.Errorf("scan.store_timeout_seconds must be positive")
	}
	if c.Scan.RecentHours <= 0 {
		return fmt.Errorf("scan.recent_hours must be positive")
	}
	if c.Scan.FocusLimit <= 0 {
		return fmt.Errorf("scan.focus_limit must be positive")
	}
	if c.Scan.EssenceLimit <= 0 {
		return fmt.Errorf("scan.essence_limit must be positive")
	}
	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache.ttl_seconds must be non-negative")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535")
	}

	if c.WorkOrder.FocusRepo != "" {
		if _, ok := c.Repos[c.WorkOrder.FocusRepo]; !ok {
			return fmt.Errorf("work_order.focus_repo %q is not a configured repo", c.WorkOrder.FocusRepo)
		}
	}
	for _, key := range c.WorkOrder.WatchKeys {
		if _, ok := c.KeyFiles[key]; !ok {
			return fmt.Errorf("work_order.watch_keys: %q is not a configured key file", key)
		}
	}

	return nil
}

// ServiceNames returns the configured service names. The claim
// extractor builds its health-reference rule from these.
func (c *Config) ServiceNames() []string {
	names := make([]string, 0, len(c.Services))
	for name := range c.Services {
		names = append(names, name)
	}
	return names
}

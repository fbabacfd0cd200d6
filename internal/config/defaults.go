package config

// DefaultConfig returns the built-in defaults. Registries (repos,
// services, key files) start empty and are expected to come from the
// config file or the init wizard.
func DefaultConfig() *Config {
	return &Config{
		Repos:    map[string]string{},
		Services: map[string]string{},
		KeyFiles: map[string]string{},
		Scan: ScanConfig{
			HTTPTimeoutSeconds:  8,
			GitTimeoutSeconds:   10,
			StoreTimeoutSeconds: 5,
			RecentHours:         72,
			FocusLimit:          20,
			EssenceLimit:        10,
		},
		Cache: CacheConfig{
			TTLSeconds: 60,
		},
		Server: ServerConfig{
			Port: 8556,
		},
	}
}

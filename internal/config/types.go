package config

// Config is the top-level orient configuration, corresponding to .orient.yml.
type Config struct {
	// LibrarianDB is the path to the knowledge-base SQLite store
	// (architect_guidance table).
	LibrarianDB string `yaml:"librarian_db" koanf:"librarian_db"`
	// SapphireDB is the path to the auxiliary routing-pattern SQLite store.
	SapphireDB string `yaml:"sapphire_db" koanf:"sapphire_db"`

	// Repos maps a repository name to its local checkout path.
	Repos map[string]string `yaml:"repos" koanf:"repos"`
	// Services maps a service name to its base URL. Each service must
	// answer GET <url>/health.
	Services map[string]string `yaml:"services" koanf:"services"`
	// KeyFiles maps a filesystem-probe key to a path whose existence is
	// checked on every scan.
	KeyFiles map[string]string `yaml:"key_files" koanf:"key_files"`

	Scan      ScanConfig      `yaml:"scan" koanf:"scan"`
	Cache     CacheConfig     `yaml:"cache" koanf:"cache"`
	Server    ServerConfig    `yaml:"server" koanf:"server"`
	WorkOrder WorkOrderConfig `yaml:"work_order" koanf:"work_order"`
}

// ScanConfig bounds the individual probes and the claim extraction window.
type ScanConfig struct {
	HTTPTimeoutSeconds  int `yaml:"http_timeout_seconds" koanf:"http_timeout_seconds"`
	GitTimeoutSeconds   int `yaml:"git_timeout_seconds" koanf:"git_timeout_seconds"`
	StoreTimeoutSeconds int `yaml:"store_timeout_seconds" koanf:"store_timeout_seconds"`
	// RecentHours is the recency window for claim extraction.
	RecentHours int `yaml:"recent_hours" koanf:"recent_hours"`
	// FocusLimit caps how many current-focus entries are analysed.
	FocusLimit int `yaml:"focus_limit" koanf:"focus_limit"`
	// EssenceLimit caps the essence previews included in the briefing.
	EssenceLimit int `yaml:"essence_limit" koanf:"essence_limit"`
}

// CacheConfig controls the single-slot briefing cache.
type CacheConfig struct {
	TTLSeconds int `yaml:"ttl_seconds" koanf:"ttl_seconds"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// WorkOrderConfig names the snapshot inputs the work-order rules single out.
type WorkOrderConfig struct {
	// FocusRepo is the repository whose untracked files are called out.
	FocusRepo string `yaml:"focus_repo" koanf:"focus_repo"`
	// WatchKeys are filesystem-probe keys whose absence produces a
	// work-order line and may claim the next action.
	WatchKeys []string `yaml:"watch_keys" koanf:"watch_keys"`
}

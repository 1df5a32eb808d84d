package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSecond == 0 {
		cfg.Server.RateLimitPerSecond = 10
	}
	if cfg.Server.RateLimitBurst == 0 {
		cfg.Server.RateLimitBurst = 20
	}
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = "/usr/local/var/pakar/data/laptops.csv"
	}
	if cfg.Catalog.DatabasePath == "" {
		cfg.Catalog.DatabasePath = "/usr/local/var/pakar/data/catalog.db"
	}
	if cfg.Catalog.DebounceMillis == 0 {
		cfg.Catalog.DebounceMillis = 500
	}
	if cfg.Catalog.Watch == nil {
		t := true
		cfg.Catalog.Watch = &t
	}
	if cfg.Recommend.DefaultPageSize == 0 {
		cfg.Recommend.DefaultPageSize = 24
	}
	if cfg.Recommend.MaxPageSize == 0 {
		cfg.Recommend.MaxPageSize = 100
	}
	if cfg.Recommend.MaxPageSize < cfg.Recommend.DefaultPageSize {
		cfg.Recommend.MaxPageSize = cfg.Recommend.DefaultPageSize
	}
	if cfg.Recommend.CacheSize == 0 {
		cfg.Recommend.CacheSize = 1024
	}
	if cfg.Recommend.SuggestionLimit == 0 {
		cfg.Recommend.SuggestionLimit = 5
	}
}

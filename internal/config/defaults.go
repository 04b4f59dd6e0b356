package config

import "time"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = 8 << 20
	}
	if cfg.Server.RateLimit.Enabled() && cfg.Server.RateLimit.Burst == 0 {
		cfg.Server.RateLimit.Burst = int(cfg.Server.RateLimit.RequestsPerSecond)
		if cfg.Server.RateLimit.Burst < 1 {
			cfg.Server.RateLimit.Burst = 1
		}
	}
	if cfg.Batch.Concurrency <= 0 {
		cfg.Batch.Concurrency = 4
	}
	if cfg.Cache.Size == 0 {
		cfg.Cache.Size = 1024
	}
	if cfg.Watch.Extensions == nil {
		cfg.Watch.Extensions = []string{
			".txt", ".md", ".rst", ".pdf", ".docx", ".xlsx", ".pptx", ".odp", ".ods",
			".json", ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp",
		}
	}
	// Recursive defaults to true when unset (nil).
	if len(cfg.Watch.Directories) > 0 && cfg.Watch.Recursive == nil {
		t := true
		cfg.Watch.Recursive = &t
	}
}

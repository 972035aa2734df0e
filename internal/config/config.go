// Package config loads all runtime configuration from environment
// variables. It is the single place that knows which env vars exist.
package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds the full server configuration.
type Config struct {
	Port      int    `env:"PORT,       default=8080"`
	DBPath    string `env:"DB_PATH,    default=data/government_jobs.db"`
	UploadDir string `env:"UPLOAD_DIR, default=uploads"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`

	// SeedJobs inserts the sample circular into an empty catalog. Meant for
	// development; circulars normally arrive through the administrative
	// process outside this core.
	SeedJobs bool `env:"SEED_JOBS, default=true"`

	// Optional admin bootstrap. When both are set, an admin account is
	// created through the regular identity store on startup (idempotent —
	// an existing account is left untouched).
	AdminNID      string `env:"ADMIN_NID"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	AdminEmail    string `env:"ADMIN_EMAIL, default=admin@govjobs.local"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: loading environment: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET must be set")
	}
	return &cfg, nil
}

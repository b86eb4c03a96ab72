package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// AppConfig collects everything the server binary needs at startup.
type AppConfig struct {
	ListenAddr    string `env:"LISTEN_ADDR"`
	Port          string `env:"PORT" envDefault:"8080"`
	DatabasePath  string `env:"DATABASE_PATH" envDefault:"atelier.db"`
	SessionSecret string `env:"SESSION_SECRET" envDefault:"atelier-dev-secret"`
	GinMode       string `env:"GIN_MODE" envDefault:"release"`

	// Media storage. MediaDir is the on-disk root holding one directory per
	// bucket; MediaURLPath is the public prefix uploads are served from.
	MediaDir      string `env:"MEDIA_DIR" envDefault:"web/media"`
	MediaBucket   string `env:"MEDIA_BUCKET" envDefault:"media"`
	MediaURLPath  string `env:"MEDIA_URL_PATH" envDefault:"/media"`
	MaxImageWidth int    `env:"MAX_IMAGE_WIDTH" envDefault:"2560"`

	SiteBaseURL string `env:"SITE_BASE_URL" envDefault:"http://localhost:8080"`
}

// Load reads the application config from the environment, with an optional
// .env file for local development. Missing values fall back to safe defaults.
func Load() (AppConfig, error) {
	// A missing .env file is not an error; the environment wins either way.
	_ = godotenv.Load()

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config: %w", err)
	}

	if strings.TrimSpace(cfg.ListenAddr) == "" {
		cfg.ListenAddr = fmt.Sprintf(":%s", cfg.Port)
	}
	cfg.MediaURLPath = "/" + strings.Trim(cfg.MediaURLPath, "/")
	cfg.SiteBaseURL = strings.TrimRight(cfg.SiteBaseURL, "/")

	return cfg, nil
}

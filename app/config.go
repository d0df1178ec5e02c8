package app

import (
	"github.com/dmitrymomot/dws/core/handler"
	"github.com/dmitrymomot/dws/core/server"
	"github.com/dmitrymomot/dws/core/view"
)

// Environments recognized by New when choosing the default logger.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds application configuration with environment variable support.
type Config struct {
	Server server.Config

	Env          string `env:"DWS_ENV" envDefault:"development"`
	Silent       bool   `env:"DWS_SILENT" envDefault:"false"`
	ViewsDir     string `env:"DWS_VIEWS_DIR" envDefault:"views"`
	MaxBodyBytes int64  `env:"DWS_MAX_BODY_BYTES" envDefault:"33554432"` // 32MB
	LogLevel     string `env:"LOG_LEVEL"`
}

// DefaultConfig returns a Config with the package defaults, as if no variables were set.
func DefaultConfig() Config {
	return Config{
		Server:       server.DefaultConfig(),
		Env:          EnvDevelopment,
		ViewsDir:     view.DefaultDir,
		MaxBodyBytes: handler.DefaultMaxBodyBytes,
	}
}

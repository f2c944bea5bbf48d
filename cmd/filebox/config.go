package main

import (
	"github.com/dmitrymomot/filebox/core/cookie"
	"github.com/dmitrymomot/filebox/core/server"
	"github.com/dmitrymomot/filebox/core/storage"
)

type Config struct {
	AppName     string `env:"APP_NAME" envDefault:"filebox"`
	Environment string `env:"APP_ENV" envDefault:"development"`

	// MaxUploadSize caps the request body on uploads, in bytes (default 100MB).
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"104857600"`

	// TemplateDir holds the HTML templates.
	TemplateDir string `env:"TEMPLATE_DIR" envDefault:"templates"`

	Storage storage.Config
	Cookie  cookie.Config
	Server  server.Config
}

func (c Config) isDevelopment() bool {
	return c.Environment != "production"
}

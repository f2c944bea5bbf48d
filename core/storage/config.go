package storage

// Config provides environment-based configuration for the local store.
type Config struct {
	Dir string `env:"UPLOAD_DIR" envDefault:"uploads"`
}

// NewFromConfig creates a Local store from configuration.
func NewFromConfig(cfg Config, opts ...Option) (*Local, error) {
	return New(cfg.Dir, opts...)
}

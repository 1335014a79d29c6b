package cookies

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/cookies/pkg/config"
	"github.com/dmitrymomot/cookies/pkg/logger"
)

// Config is the environment configuration for a cookie-enabled service.
type Config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	CookieSecret    string        `env:"COOKIE_SECRET"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	Sentry          logger.SentryConfig
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// LoadConfig reads Config from the environment and an optional .env file.
func LoadConfig(opts ...config.Option) (Config, error) {
	var cfg Config
	if err := config.Load(&cfg, opts...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Key derives the cookie Key from CookieSecret.
// The secret must be at least 32 bytes.
func (c Config) Key() (*Key, error) {
	return DeriveKey([]byte(c.CookieSecret))
}

// Logger builds a logger from the log and Sentry settings.
func (c Config) Logger(component string, extractors ...ContextExtractor) *slog.Logger {
	return logger.New(
		logger.WithLevel(logger.ParseLevel(c.LogLevel)),
		logger.WithFormat(logger.Format(c.LogFormat)),
		logger.WithContextExtractors(extractors...),
		logger.WithSentry(c.Sentry),
	).With(logger.Component(component))
}

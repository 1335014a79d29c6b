// Package config loads typed configuration from the environment.
//
// A .env file in the working directory is read first when present. Variables
// already set in the process environment win over the file.
//
//	type Config struct {
//	    Addr         string `env:"HTTP_ADDR" envDefault:":8080"`
//	    CookieSecret string `env:"COOKIE_SECRET,required"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	ErrNilPointer   = errors.New("config: nil pointer")
	ErrParsingEnv   = errors.New("config: parse environment")
	ErrLoadingFiles = errors.New("config: load env files")
)

// Option configures Load.
type Option func(*options)

type options struct {
	prefix string
	files  []string
}

// WithPrefix prepends prefix to every variable name.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnvFiles replaces the default .env file list. Missing files are skipped.
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.files = files }
}

// Load reads env files and parses the environment into v.
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}
	o := &options{files: []string{".env"}}
	for _, opt := range opts {
		opt(o)
	}

	for _, f := range o.files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Join(ErrLoadingFiles, fmt.Errorf("%s: %w", f, err))
		}
	}

	if err := env.ParseWithOptions(v, env.Options{Prefix: o.prefix}); err != nil {
		return errors.Join(ErrParsingEnv, err)
	}
	return nil
}

// MustLoad is Load that panics on error.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(err)
	}
}

package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option customizes a single Load call.
type Option func(*options)

type options struct {
	prefix   string
	files    []string
	explicit bool // files were named by the caller; missing ones are errors
	environ  map[string]string
}

// WithPrefix prepends prefix to every env key of the struct, so
// `env:"TARGET"` with prefix "FSNAME_" reads FSNAME_TARGET.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithEnvFiles loads the named dotenv files instead of the default ".env".
// Unlike the default file, a named file that cannot be read is an error.
func WithEnvFiles(files ...string) Option {
	return func(o *options) {
		o.files = files
		o.explicit = true
	}
}

// WithEnvironment parses from environ instead of the process environment.
// No dotenv file is read in this mode.
func WithEnvironment(environ map[string]string) Option {
	return func(o *options) {
		o.environ = environ
	}
}

// Load parses environment variables into the struct pointed to by v.
//
// Values already present in the process environment win over dotenv files,
// which only fill in what is missing.
//
// Example:
//
//	type Config struct {
//		Target string `env:"TARGET" envDefault:"linux"`
//	}
//
//	var cfg Config
//	err := config.Load(&cfg, config.WithPrefix("FSNAME_"))
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := options{files: []string{".env"}}
	for _, opt := range opts {
		opt(&o)
	}

	if o.environ == nil {
		if err := godotenv.Load(o.files...); err != nil && o.explicit {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}

	if err := env.ParseWithOptions(v, env.Options{
		Prefix:      o.prefix,
		Environment: o.environ,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
// This is useful for configurations that are required for the application to start.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

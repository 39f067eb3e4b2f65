package main

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/fsname/pkg/config"
	"github.com/dmitrymomot/fsname/pkg/fsname"
	"github.com/dmitrymomot/fsname/pkg/logger"
)

// envPrefix is prepended to every environment key below.
const envPrefix = "FSNAME_"

// Config is read from FSNAME_* environment variables (and .env); flags
// override it.
type Config struct {
	Target      string `env:"TARGET" envDefault:"linux"`
	Replacement string `env:"REPLACEMENT"`
	Pad         string `env:"PAD"`
	Profile     string `env:"PROFILE"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	Store       string `env:"STORE"`
	S3          S3     `envPrefix:"S3_"`
}

// S3 holds connection settings used when Store is an s3:// URL.
type S3 struct {
	Region      string `env:"REGION" envDefault:"us-east-1"`
	Endpoint    string `env:"ENDPOINT"`
	AccessKeyID string `env:"ACCESS_KEY_ID"`
	SecretKey   string `env:"SECRET_KEY"`
	BaseURL     string `env:"BASE_URL"`
	PathStyle   bool   `env:"PATH_STYLE"`
}

// loadConfig reads the configuration. A nil environ means the process
// environment plus .env.
func loadConfig(environ map[string]string) (Config, error) {
	var cfg Config
	opts := []config.Option{config.WithPrefix(envPrefix)}
	if environ != nil {
		opts = append(opts, config.WithEnvironment(environ))
	}
	if err := config.Load(&cfg, opts...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate checks the values that would otherwise panic further down.
func (c Config) validate() error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	switch logger.Format(c.LogFormat) {
	case logger.FormatText, logger.FormatJSON:
	default:
		return fmt.Errorf("log format %q: want text or json", c.LogFormat)
	}
	if _, err := optionalRune("replacement", c.Replacement); err != nil {
		return err
	}
	if _, err := optionalRune("pad", c.Pad); err != nil {
		return err
	}
	return nil
}

// policyOptions turns the replacement and pad settings into policy options.
func (c Config) policyOptions() []fsname.Option {
	var opts []fsname.Option
	if r, _ := optionalRune("replacement", c.Replacement); r != 0 {
		opts = append(opts, fsname.WithReplacement(r))
	}
	if r, _ := optionalRune("pad", c.Pad); r != 0 {
		opts = append(opts, fsname.WithPad(r))
	}
	return opts
}

// optionalRune parses a setting that is either empty or a single character.
func optionalRune(field, s string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%s must be a single character, got %q", field, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

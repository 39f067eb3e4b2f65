// Package config loads configuration structs from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
//
//   - Loads a `.env` file from the working directory when present, or the
//     files named with WithEnvFiles.
//   - Parses the environment into any Go struct using field tags.
//   - Applies a common key prefix with WithPrefix.
//   - Parses from an explicit map with WithEnvironment, which keeps tests
//     independent of the process environment.
//
// # Usage
//
//	type Config struct {
//		Target   string `env:"TARGET" envDefault:"linux"`
//		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg, config.WithPrefix("FSNAME_")); err != nil {
//		return err
//	}
//
// MustLoad panics instead of returning an error, for configuration the
// program cannot start without.
//
// # Error Handling
//
// Errors wrap ErrParsingConfig, ErrLoadingEnvFile or ErrNilPointer and can be
// checked with errors.Is.
package config

// Package config loads the server and CLI settings.
//
// Values are resolved in three layers: built-in defaults, an optional TOML
// file, and finally environment variables. Later layers win.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/Danishprabhu04/image-encrypt/chaos"
	"github.com/Danishprabhu04/image-encrypt/keys"
)

const (
	EnvPort           = "PORT"
	EnvLogLevel       = "DNACIPHER_LOG_LEVEL"
	EnvAllowedOrigins = "DNACIPHER_ALLOWED_ORIGINS"
)

type Config struct {
	Port           string   `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`
	MaxUploadBytes int64    `toml:"max_upload_bytes"`

	LogLevel  string `toml:"log_level"`
	LogPretty bool   `toml:"log_pretty"`

	// RandomSeed makes the encrypt endpoint mint a fresh seed per request
	// when the caller sends round counts instead of a full key.
	RandomSeed bool `toml:"random_seed"`

	DefaultDRounds int     `toml:"default_d_rounds"`
	DefaultPRounds int     `toml:"default_p_rounds"`
	DefaultR       float64 `toml:"default_r"`

	Parallel bool `toml:"parallel"`
}

func Default() Config {
	return Config{
		Port:           "8080",
		AllowedOrigins: []string{"http://localhost:3000"},
		MaxUploadBytes: 32 << 20,
		LogLevel:       "info",
		LogPretty:      false,
		RandomSeed:     true,
		DefaultDRounds: 4,
		DefaultPRounds: 5,
		DefaultR:       3.99,
		Parallel:       true,
	}
}

// Load returns the defaults overlaid with the TOML file at path (skipped when
// path is empty) and then with the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
		}
	}

	if v := os.Getenv(EnvPort); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvAllowedOrigins); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("port must not be empty"))
	}
	if len(c.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("allowed_origins must list at least one origin"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("max_upload_bytes must be positive, got %d", c.MaxUploadBytes))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.DefaultDRounds < 1 || c.DefaultDRounds > keys.MaxRounds {
		errs = append(errs, fmt.Errorf("default_d_rounds must be in [1, %d], got %d", keys.MaxRounds, c.DefaultDRounds))
	}
	if c.DefaultPRounds < 1 || c.DefaultPRounds > keys.MaxRounds {
		errs = append(errs, fmt.Errorf("default_p_rounds must be in [1, %d], got %d", keys.MaxRounds, c.DefaultPRounds))
	}
	if c.DefaultR < chaos.MinR || c.DefaultR > chaos.MaxR {
		errs = append(errs, fmt.Errorf("default_r must be in [%g, %g], got %g", chaos.MinR, chaos.MaxR, c.DefaultR))
	}
	return errors.Join(errs...)
}

// Save writes c as a TOML file that Load accepts.
func (c Config) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close config %s: %w", path, cerr)
		}
	}()
	return toml.NewEncoder(f).Encode(c)
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultAPIBaseURL is the scoring service address used when nothing else is
// configured.
const DefaultAPIBaseURL = "http://127.0.0.1:8000"

// Config holds client configuration.
type Config struct {
	// APIBaseURL is the scoring service root, without a trailing path.
	APIBaseURL string `yaml:"api_url"`

	// RequestTimeout bounds a single API call. Default: 15s.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// DBPath is the local SQLite file. Empty means store.DefaultDBPath.
	DBPath string `yaml:"db_path"`

	// UserID overrides the stored identity when set.
	UserID string `yaml:"user_id"`

	// LogRequests records every API call in the local store.
	LogRequests bool `yaml:"log_requests"`

	ReleaseOwner string `yaml:"release_owner"`
	ReleaseRepo  string `yaml:"release_repo"`
}

// Options controls where Load looks for configuration sources.
type Options struct {
	// ConfigPath is the YAML file. Empty means DefaultPath; a missing
	// default file is not an error, a missing explicit file is.
	ConfigPath string

	// EnvFile is the dotenv file. Empty means ".env" in the working directory.
	EnvFile string

	// Getenv looks up real environment variables. Nil means os.LookupEnv.
	Getenv func(string) (string, bool)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		APIBaseURL:     DefaultAPIBaseURL,
		RequestTimeout: 15 * time.Second,
		LogRequests:    true,
		ReleaseOwner:   "dsaintel",
		ReleaseRepo:    "dsaiq",
	}
}

// DefaultPath resolves the config file path:
// 1. $XDG_CONFIG_HOME/dsaiq/config.yaml
// 2. ~/.config/dsaiq/config.yaml
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "dsaiq", "config.yaml"), nil
}

// Load builds a Config from defaults, the YAML file, the dotenv file and
// DSAIQ_* environment variables, in increasing precedence. Values in the
// dotenv file never override real environment variables. Command-line flags
// are applied by the caller on top.
func Load(opts Options) (Config, error) {
	cfg := DefaultConfig()

	path := opts.ConfigPath
	required := path != ""
	if path == "" {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := loadFile(&cfg, path, required); err != nil {
			return cfg, err
		}
	}

	lookup := opts.Getenv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	dotenv, err := readDotenv(envFile)
	if err != nil {
		return cfg, err
	}

	err = applyEnv(&cfg, func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	})
	return cfg, err
}

func loadFile(cfg *Config, path string, required bool) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		// An empty file decodes to io.EOF.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func readDotenv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return env, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("DSAIQ_API_URL"); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := lookup("DSAIQ_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("DSAIQ_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := lookup("DSAIQ_DB"); ok && v != "" {
		cfg.DBPath = v
	}
	if v, ok := lookup("DSAIQ_USER"); ok && v != "" {
		cfg.UserID = v
	}
	if v, ok := lookup("DSAIQ_LOG_REQUESTS"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DSAIQ_LOG_REQUESTS: %w", err)
		}
		cfg.LogRequests = b
	}
	return nil
}

// Validate checks that the API address and timeout are usable.
func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api url is required")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("invalid api url %q: %w", c.APIBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api url %q: scheme must be http or https", c.APIBaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid api url %q: missing host", c.APIBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

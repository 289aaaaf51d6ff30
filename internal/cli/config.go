package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	apperrors "github.com/matzehuels/mouser/pkg/errors"
	"github.com/matzehuels/mouser/pkg/mouser"
)

const (
	envAPIKey  = "MOUSER_API_KEY"
	envBaseURL = "MOUSER_BASE_URL"

	defaultEnvFile = ".env"
	defaultTimeout = 30 * time.Second
)

// Config is the resolved configuration for one invocation.
type Config struct {
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// fileConfig mirrors config.toml. The API key is deliberately not read from it.
type fileConfig struct {
	BaseURL   string        `toml:"base_url"`
	Timeout   time.Duration `toml:"timeout"`
	UserAgent string        `toml:"user_agent"`
}

// loadConfig resolves configuration, lowest precedence first:
//
//  1. built-in defaults
//  2. the TOML config file
//  3. the env file (never overrides variables already set)
//  4. the process environment
//  5. command-line flags
//
// A missing MOUSER_API_KEY is an error. A missing config or env file is an
// error only when its path was given explicitly.
func loadConfig(opts globalOpts, logger *log.Logger) (Config, error) {
	cfg := Config{
		BaseURL: mouser.DefaultBaseURL,
		Timeout: defaultTimeout,
	}

	if err := applyConfigFile(&cfg, opts.configFile, logger); err != nil {
		return Config{}, err
	}

	dotenv, err := readEnvFile(opts.envFile)
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v
		}
		return dotenv[key]
	}

	cfg.APIKey = strings.TrimSpace(lookup(envAPIKey))
	if v := lookup(envBaseURL); v != "" {
		cfg.BaseURL = v
	}

	if opts.baseURL != "" {
		cfg.BaseURL = opts.baseURL
	}
	if opts.timeout != 0 {
		cfg.Timeout = opts.timeout
	}

	if cfg.APIKey == "" {
		return Config{}, apperrors.New(apperrors.ErrCodeUnauthorized, "%s not set", envAPIKey)
	}
	if cfg.Timeout < 0 {
		return Config{}, apperrors.New(apperrors.ErrCodeInvalidConfig, "timeout must not be negative, got %s", cfg.Timeout)
	}
	if err := apperrors.ValidateURL(cfg.BaseURL); err != nil {
		return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "base URL")
	}
	return cfg, nil
}

func applyConfigFile(cfg *Config, path string, logger *log.Logger) error {
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return nil
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	for _, key := range md.Undecoded() {
		logger.Warn("Unknown config key", "key", key.String(), "file", path)
	}
	logger.Debug("Loaded config", "file", path)

	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.Timeout != 0 {
		cfg.Timeout = fc.Timeout
	}
	if fc.UserAgent != "" {
		cfg.UserAgent = fc.UserAgent
	}
	return nil
}

// readEnvFile parses the env file without touching the process environment.
func readEnvFile(path string) (map[string]string, error) {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}
	vars, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "read env file %s", path)
	}
	return vars, nil
}

// configDir returns the config directory using XDG standard (~/.config/mouser/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

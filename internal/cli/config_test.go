package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/matzehuels/mouser/pkg/errors"
	"github.com/matzehuels/mouser/pkg/mouser"
)

// isolate clears the environment variables and default paths loadConfig reads.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(envAPIKey, "")
	t.Setenv(envBaseURL, "")
	return dir
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func discardLogger() *log.Logger {
	return newLogger(&bytes.Buffer{}, log.InfoLevel)
}

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)
	t.Setenv(envAPIKey, "TESTKEY")

	cfg, err := loadConfig(globalOpts{}, discardLogger())
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.APIKey != "TESTKEY" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.BaseURL != mouser.DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, mouser.DefaultBaseURL)
	}
	if cfg.Timeout != defaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, defaultTimeout)
	}
}

func TestLoadConfigMissingKey(t *testing.T) {
	isolate(t)

	_, err := loadConfig(globalOpts{}, discardLogger())
	if !apperrors.Is(err, apperrors.ErrCodeUnauthorized) {
		t.Fatalf("error = %v, want %v", err, apperrors.ErrCodeUnauthorized)
	}
	if !strings.Contains(err.Error(), envAPIKey) {
		t.Errorf("error should name %s: %v", envAPIKey, err)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := isolate(t)
	envFile := writeFile(t, filepath.Join(dir, "test.env"), "MOUSER_API_KEY=FROMFILE\nMOUSER_BASE_URL=http://127.0.0.1:9999/api/v2/\n")

	cfg, err := loadConfig(globalOpts{envFile: envFile}, discardLogger())
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.APIKey != "FROMFILE" {
		t.Errorf("APIKey = %q, want FROMFILE", cfg.APIKey)
	}
	if cfg.BaseURL != "http://127.0.0.1:9999/api/v2/" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if os.Getenv(envAPIKey) == "FROMFILE" {
		t.Error("env file leaked into the process environment")
	}
}

func TestLoadConfigEnvironmentBeatsEnvFile(t *testing.T) {
	dir := isolate(t)
	envFile := writeFile(t, filepath.Join(dir, "test.env"), "MOUSER_API_KEY=FROMFILE\n")
	t.Setenv(envAPIKey, "FROMENV")

	cfg, err := loadConfig(globalOpts{envFile: envFile}, discardLogger())
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.APIKey != "FROMENV" {
		t.Errorf("APIKey = %q, want FROMENV", cfg.APIKey)
	}
}

func TestLoadConfigMissingExplicitFiles(t *testing.T) {
	dir := isolate(t)
	t.Setenv(envAPIKey, "TESTKEY")

	tests := []struct {
		name string
		opts globalOpts
	}{
		{"env file", globalOpts{envFile: filepath.Join(dir, "nope.env")}},
		{"config file", globalOpts{configFile: filepath.Join(dir, "nope.toml")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(tt.opts, discardLogger())
			if !apperrors.Is(err, apperrors.ErrCodeInvalidConfig) {
				t.Errorf("error = %v, want %v", err, apperrors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLoadConfigTOML(t *testing.T) {
	dir := isolate(t)
	t.Setenv(envAPIKey, "TESTKEY")
	writeFile(t, filepath.Join(dir, appName, "config.toml"), `
base_url = "https://mirror.example.com/api/v2"
timeout = "5s"
user_agent = "bench/1.0"
colour = "blue"
`)

	var logs bytes.Buffer
	cfg, err := loadConfig(globalOpts{}, newLogger(&logs, log.InfoLevel))
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.BaseURL != "https://mirror.example.com/api/v2" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.UserAgent != "bench/1.0" {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
	if !strings.Contains(logs.String(), "colour") {
		t.Errorf("unknown key not reported:\n%s", logs.String())
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	dir := isolate(t)
	t.Setenv(envAPIKey, "TESTKEY")
	writeFile(t, filepath.Join(dir, appName, "config.toml"), `base_url = "https://file.example.com/"`)
	t.Setenv(envBaseURL, "https://env.example.com/")

	cfg, err := loadConfig(globalOpts{}, discardLogger())
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.BaseURL != "https://env.example.com/" {
		t.Errorf("env should beat file, BaseURL = %q", cfg.BaseURL)
	}

	cfg, err = loadConfig(globalOpts{baseURL: "https://flag.example.com/", timeout: time.Minute}, discardLogger())
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.BaseURL != "https://flag.example.com/" {
		t.Errorf("flag should beat env, BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != time.Minute {
		t.Errorf("Timeout = %v, want 1m", cfg.Timeout)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	isolate(t)
	t.Setenv(envAPIKey, "TESTKEY")

	tests := []struct {
		name string
		opts globalOpts
	}{
		{"bad base url", globalOpts{baseURL: "ftp://example.com"}},
		{"negative timeout", globalOpts{timeout: -time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(tt.opts, discardLogger())
			if !apperrors.Is(err, apperrors.ErrCodeInvalidConfig) {
				t.Errorf("error = %v, want %v", err, apperrors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", appName) {
		t.Errorf("configDir() = %q", dir)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	dir, err = configDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}
	if !strings.HasSuffix(dir, filepath.Join(".config", appName)) {
		t.Errorf("configDir() = %q, want ~/.config/%s", dir, appName)
	}
}

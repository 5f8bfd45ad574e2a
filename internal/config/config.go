// Package config loads the client configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the client configuration. It is read once per invocation and
// not modified afterwards.
type Config struct {
	APIBaseURL        string `json:"apiBaseUrl" yaml:"apiBaseUrl"`
	APIKey            string `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
	DefaultAuthorName string `json:"defaultAuthorName,omitempty" yaml:"defaultAuthorName,omitempty"`
}

const (
	// ConfigFile is the config file name looked up next to the executable.
	ConfigFile = "config.json"

	// DefaultAuthorName is used for comments when neither the command line
	// nor the config names an author.
	DefaultAuthorName = "Anonymous"
)

// Environment variables consulted by the loader.
const (
	EnvConfigPath = "PAPER_CONFIG"
	EnvBaseURL    = "PAPER_API_BASE_URL"
	EnvAPIKey     = "PAPER_API_KEY"
	EnvAuthorName = "PAPER_AUTHOR_NAME"
)

var (
	// ErrNotFound is returned when the config file does not exist.
	ErrNotFound = errors.New("config file not found")

	// ErrMissingBaseURL is returned when apiBaseUrl is empty.
	ErrMissingBaseURL = errors.New("apiBaseUrl is not set")
)

// DefaultPath returns config.json in the directory of the running executable.
func DefaultPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), ConfigFile), nil
}

// ResolvePath picks the config path: an explicit flag value first, then
// PAPER_CONFIG, then DefaultPath.
func ResolvePath(flagValue string) (string, error) {
	if flagValue != "" {
		return ExpandPath(flagValue), nil
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return ExpandPath(env), nil
	}
	return DefaultPath()
}

// Load reads the configuration at path. Files ending in .yml or .yaml are
// decoded as YAML, everything else as JSON. Environment overrides are
// applied after parsing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	} else {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if cfg.DefaultAuthorName == "" {
		cfg.DefaultAuthorName = DefaultAuthorName
	}
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("%w in %s", ErrMissingBaseURL, path)
	}

	return &cfg, nil
}

// applyEnv overrides file values with non-empty environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvAuthorName); v != "" {
		c.DefaultAuthorName = v
	}
}

// AuthorName returns override if set, otherwise the configured default.
func (c *Config) AuthorName(override string) string {
	if override != "" {
		return override
	}
	return c.DefaultAuthorName
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yml" || ext == ".yaml"
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}

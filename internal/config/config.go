package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the pgsearch API configuration.
type Config struct {
	HTTP     HTTPConfig             `yaml:"http"`
	Database DatabaseConfig         `yaml:"database"`
	Search   SearchConfig           `yaml:"search"`
	Scopes   map[string]ScopeConfig `yaml:"scopes"`
	Auth     AuthConfig             `yaml:"auth"`
	Logging  LoggingConfig          `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds Postgres connection settings.
type DatabaseConfig struct {
	DSN              string `yaml:"dsn"`
	ReadinessTimeout int    `yaml:"readiness_timeout_sec"`
}

// SearchConfig holds search defaults applied to scopes that do not
// override them.
type SearchConfig struct {
	Dictionary      string `yaml:"dictionary"` // default: english
	Operator        string `yaml:"operator"`   // and, or, not (default: and)
	DefaultPageSize int    `yaml:"default_page_size"`
	MaxPageSize     int    `yaml:"max_page_size"`
}

// ScopeConfig declares one searchable scope served over HTTP.
type ScopeConfig struct {
	Table      string                       `yaml:"table"`
	PrimaryKey string                       `yaml:"primary_key"`
	Against    []string                     `yaml:"against"`
	Associated []AssociatedConfig           `yaml:"associated"`
	Weights    map[string]map[string]string `yaml:"weights"`
	Operator   string                       `yaml:"operator"`
	Dictionary string                       `yaml:"dictionary"`
}

// AssociatedConfig declares searchable columns on a joined relation.
type AssociatedConfig struct {
	Relation string   `yaml:"relation"`
	Table    string   `yaml:"table"`
	Join     string   `yaml:"join"`
	Against  []string `yaml:"against"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Search.Dictionary == "" {
		c.Search.Dictionary = "english"
	}
	if c.Search.Operator == "" {
		c.Search.Operator = "and"
	}
	if c.Search.DefaultPageSize <= 0 {
		c.Search.DefaultPageSize = 20
	}
	if c.Search.MaxPageSize <= 0 {
		c.Search.MaxPageSize = 100
	}
	for name, sc := range c.Scopes {
		if sc.PrimaryKey == "" {
			sc.PrimaryKey = "id"
		}
		if sc.Operator == "" {
			sc.Operator = c.Search.Operator
		}
		if sc.Dictionary == "" {
			sc.Dictionary = c.Search.Dictionary
		}
		c.Scopes[name] = sc
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	for name, sc := range c.Scopes {
		if sc.Table == "" {
			return fmt.Errorf("scopes.%s.table is required", name)
		}
		searchable := len(sc.Against)
		for i, assoc := range sc.Associated {
			if assoc.Relation == "" || assoc.Table == "" || assoc.Join == "" {
				return fmt.Errorf(
					"scopes.%s.associated[%d] needs relation, table, and join", name, i)
			}
			searchable += len(assoc.Against)
		}
		if searchable == 0 {
			return fmt.Errorf("scopes.%s has no searchable columns", name)
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}

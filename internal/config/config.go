// Package config loads client and dev server settings.
//
// Values are layered: built-in defaults, then ~/.alumni/config.yaml (or the file named by
// ALUMNI_CONFIG), then ALUMNI_* environment variables. Command-line flags are applied
// on top by the cmd package.
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/alumni/internal/errors"
)

const (
	// DefaultAPIURL is used when no base URL is configured.
	DefaultAPIURL = "http://localhost:8000/api"

	// DefaultTimeout aborts hung requests.
	DefaultTimeout = 10 * time.Second

	// ConfigFileEnv names the environment variable that overrides the config file path.
	ConfigFileEnv = "ALUMNI_CONFIG"

	dirName = ".alumni"
)

// Config holds the client configuration
type Config struct {
	// APIURL is the base URL of the portal API, e.g. http://localhost:8000/api
	APIURL string `yaml:"api_url" env:"ALUMNI_API_URL"`

	// Timeout bounds every request to the portal API
	Timeout time.Duration `yaml:"timeout" env:"ALUMNI_TIMEOUT"`

	// TokenFile is where the bearer token is persisted
	TokenFile string `yaml:"token_file" env:"ALUMNI_TOKEN_FILE"`

	LogLevel  string `yaml:"log_level" env:"ALUMNI_LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"ALUMNI_LOG_FORMAT"`

	DevServer DevServerConfig `yaml:"devserver" envPrefix:"ALUMNI_DEVSERVER_"`
}

// DevServerConfig configures the local development server
type DevServerConfig struct {
	Addr string `yaml:"addr" env:"ADDR"`

	// Secret signs issued tokens. A random secret is generated when empty,
	// which invalidates every token on restart.
	Secret string `yaml:"secret" env:"SECRET"`

	// TokenTTL is the lifetime of issued tokens
	TokenTTL time.Duration `yaml:"token_ttl" env:"TOKEN_TTL"`

	// LoginRate and LoginBurst limit login attempts per client IP
	LoginRate  float64 `yaml:"login_rate" env:"LOGIN_RATE"`
	LoginBurst int     `yaml:"login_burst" env:"LOGIN_BURST"`
}

// LoadOptions controls where Load reads from. Zero values mean the process environment
// and the default config file.
type LoadOptions struct {
	ConfigFile  string
	Environment map[string]string
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		APIURL:    DefaultAPIURL,
		Timeout:   DefaultTimeout,
		TokenFile: filepath.Join(homeDir(), dirName, "auth.json"),
		LogLevel:  "warn",
		LogFormat: "text",
		DevServer: DevServerConfig{
			Addr:       "127.0.0.1:8000",
			TokenTTL:   24 * time.Hour,
			LoginRate:  1,
			LoginBurst: 5,
		},
	}
}

// DefaultConfigFile returns ~/.alumni/config.yaml
func DefaultConfigFile() string {
	return filepath.Join(homeDir(), dirName, "config.yaml")
}

// Load builds the configuration from defaults, the YAML file and the environment.
// A missing config file is not an error.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	path := opts.ConfigFile
	if path == "" {
		path = lookup(opts.Environment, ConfigFileEnv)
	}
	if path == "" {
		path = DefaultConfigFile()
	}

	if err := loadFile(path, &cfg); err != nil {
		return Config{}, err
	}

	envOpts := env.Options{}
	if opts.Environment != nil {
		envOpts.Environment = opts.Environment
	}
	if err := env.ParseWithOptions(&cfg, envOpts); err != nil {
		return Config{}, errors.NewConfigInvalidError(err.Error())
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the client cannot work with
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return errors.NewConfigInvalidError(fmt.Sprintf("api_url %q: %v", c.APIURL, err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.NewConfigInvalidError(fmt.Sprintf("api_url %q must use http or https", c.APIURL))
	}
	if u.Host == "" {
		return errors.NewConfigInvalidError(fmt.Sprintf("api_url %q has no host", c.APIURL))
	}
	if c.Timeout <= 0 {
		return errors.NewConfigInvalidError(fmt.Sprintf("timeout must be positive, got %s", c.Timeout))
	}
	if c.TokenFile == "" {
		return errors.NewConfigInvalidError("token_file must not be empty")
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.NewFileReadError(path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.NewFileUnmarshalError(path, "yaml", err)
	}
	return nil
}

func lookup(environ map[string]string, key string) string {
	if environ != nil {
		return environ[key]
	}
	return os.Getenv(key)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/rohmanhakim/arnie-quotes/pkg/fileutil"
	"gopkg.in/yaml.v3"
)

const (
	DefaultThrottleLimit = 10
	DefaultCacheMaxSize  = 100
	DefaultTimeout       = 10 * time.Second
	DefaultLogLevel      = "info"
)

type Config struct {
	//===============
	// Batching
	//===============
	// Size of each window of identifiers resolved concurrently.
	// It also bounds how many fetches are in flight at once.
	throttleLimit int

	//===============
	// Cache
	//===============
	// Maximum number of successful quotes kept in the LRU cache
	cacheMaxSize int

	//===============
	// Fetch
	//===============
	// Timeout of a single HTTP request. Zero disables the timeout.
	// Only the HTTP fetcher reads it; the scheduler never cancels a window.
	timeout time.Duration

	//===============
	// Observability
	//===============
	// apex/log level name (debug, info, warn, error, fatal)
	logLevel string
}

type configDTO struct {
	ThrottleLimit int    `json:"throttleLimit,omitempty" yaml:"throttleLimit,omitempty"`
	CacheMaxSize  int    `json:"cacheMaxSize,omitempty" yaml:"cacheMaxSize,omitempty"`
	Timeout       string `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	LogLevel      string `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	cfg := WithDefault()

	// Only override if a non-zero value is provided
	if dto.ThrottleLimit != 0 {
		cfg.WithThrottleLimit(dto.ThrottleLimit)
	}
	if dto.CacheMaxSize != 0 {
		cfg.WithCacheMaxSize(dto.CacheMaxSize)
	}
	if dto.Timeout != "" {
		timeout, err := time.ParseDuration(dto.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("%w: timeout: %s", ErrInvalidConfig, err.Error())
		}
		cfg.WithTimeout(timeout)
	}
	if dto.LogLevel != "" {
		cfg.WithLogLevel(dto.LogLevel)
	}

	return cfg.Build()
}

// WithConfigFile loads a JSON (.json) or YAML (.yaml, .yml) config file.
// Fields left out of the file keep their default values.
func WithConfigFile(path string) (Config, error) {
	configContent, readErr := fileutil.ReadFile(path)
	if readErr != nil {
		var fileErr *fileutil.FileError
		if errors.As(readErr, &fileErr) && fileErr.Cause == fileutil.ErrCauseNotExist {
			return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, fileErr.Message)
		}
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, readErr.Error())
	}
	cfgDTO := configDTO{}

	var err error
	switch fileutil.GetFileExtension(path) {
	case "yaml", "yml":
		err = yaml.Unmarshal(configContent, &cfgDTO)
	default:
		err = json.Unmarshal(configContent, &cfgDTO)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}

// WithDefault creates a new Config holding the default value of every field.
func WithDefault() *Config {
	defaultConfig := Config{
		throttleLimit: DefaultThrottleLimit,
		cacheMaxSize:  DefaultCacheMaxSize,
		timeout:       DefaultTimeout,
		logLevel:      DefaultLogLevel,
	}
	return &defaultConfig
}

func (c *Config) WithThrottleLimit(limit int) *Config {
	c.throttleLimit = limit
	return c
}

func (c *Config) WithCacheMaxSize(size int) *Config {
	c.cacheMaxSize = size
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithLogLevel(level string) *Config {
	c.logLevel = level
	return c
}

func (c *Config) Build() (Config, error) {
	if c.throttleLimit <= 0 {
		return Config{}, fmt.Errorf("%w: throttleLimit must be greater than zero, got %d", ErrInvalidConfig, c.throttleLimit)
	}
	if c.cacheMaxSize <= 0 {
		return Config{}, fmt.Errorf("%w: cacheMaxSize must be greater than zero, got %d", ErrInvalidConfig, c.cacheMaxSize)
	}
	if c.timeout < 0 {
		return Config{}, fmt.Errorf("%w: timeout cannot be negative, got %v", ErrInvalidConfig, c.timeout)
	}
	if _, err := log.ParseLevel(c.logLevel); err != nil {
		return Config{}, fmt.Errorf("%w: logLevel %q", ErrInvalidConfig, c.logLevel)
	}

	return *c, nil
}

func (c Config) ThrottleLimit() int {
	return c.throttleLimit
}

func (c Config) CacheMaxSize() int {
	return c.cacheMaxSize
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) LogLevel() string {
	return c.logLevel
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type Config struct {
	//===============
	// Region
	//===============
	// ISO country code of the regional site (e.g. "ie", "de").
	// Fixed at client construction; every request is scoped to it.
	country string
	// Language code within the regional site (e.g. "en").
	language string

	//===============
	// Cache
	//===============
	// Root directory of the on-disk asset cache. One subdirectory per
	// item number. Always passed explicitly, never a package default.
	cacheDir string

	//===============
	// Fetch
	//===============
	// Maximum time of a single request, socket timeout included.
	timeout time.Duration
	// User agent used in request headers. In raw string
	userAgent string
}

type configDTO struct {
	Country   string        `json:"country,omitempty"`
	Language  string        `json:"language,omitempty"`
	CacheDir  string        `json:"cacheDir,omitempty"`
	Timeout   time.Duration `json:"timeout,omitempty"`
	UserAgent string        `json:"userAgent,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	builder := WithDefault()

	if dto.Country != "" {
		builder = builder.WithCountry(dto.Country)
	}
	if dto.Language != "" {
		builder = builder.WithLanguage(dto.Language)
	}
	if dto.CacheDir != "" {
		builder = builder.WithCacheDir(dto.CacheDir)
	}
	if dto.Timeout != 0 {
		builder = builder.WithTimeout(dto.Timeout)
	}
	if dto.UserAgent != "" {
		builder = builder.WithUserAgent(dto.UserAgent)
	}

	return builder.Build()
}

func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}
	cfgDTO := configDTO{}

	err = json.Unmarshal(configContent, &cfgDTO)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	cfg, err := newConfigFromDTO(cfgDTO)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithDefault creates a new Config with default values for all fields.
func WithDefault() *Config {
	defaultConfig := Config{
		country:   "ie",
		language:  "en",
		cacheDir:  "cache",
		timeout:   time.Second * 10,
		userAgent: "ikea-catalog/1.0 ( https://github.com/rohmanhakim/ikea-catalog )",
	}
	return &defaultConfig
}

func (c *Config) WithCountry(country string) *Config {
	c.country = country
	return c
}

func (c *Config) WithLanguage(language string) *Config {
	c.language = language
	return c
}

func (c *Config) WithCacheDir(cacheDir string) *Config {
	c.cacheDir = cacheDir
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) Build() (Config, error) {
	if c.country == "" {
		return Config{}, fmt.Errorf("%w: country cannot be empty", ErrInvalidConfig)
	}
	if c.language == "" {
		return Config{}, fmt.Errorf("%w: language cannot be empty", ErrInvalidConfig)
	}
	if c.cacheDir == "" {
		return Config{}, fmt.Errorf("%w: cacheDir cannot be empty", ErrInvalidConfig)
	}
	if c.timeout <= 0 {
		return Config{}, fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	return *c, nil
}

func (c Config) Country() string {
	return c.country
}

func (c Config) Language() string {
	return c.language
}

func (c Config) CacheDir() string {
	return c.cacheDir
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) UserAgent() string {
	return c.userAgent
}

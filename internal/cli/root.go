package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rohmanhakim/ikea-catalog/internal/cache"
	"github.com/rohmanhakim/ikea-catalog/internal/catalog"
	"github.com/rohmanhakim/ikea-catalog/internal/config"
	"github.com/rohmanhakim/ikea-catalog/internal/metadata"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	country   string
	language  string
	cacheDir  string
	timeout   time.Duration
	userAgent string
	verbose   bool
)

var logger zerolog.Logger

// NewRootCmd builds the command tree. Flags are resolved as
// flag > environment > default; a config file overrides everything else.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ikea-catalog",
		Short: "Search the IKEA catalog and download 3D models and thumbnails.",
		Long: `ikea-catalog is a CLI application that queries IKEA's public web
endpoints to search the product catalog, fetch product metadata, and
download 3D model assets and thumbnails into a local on-disk cache.

Every operation is cache-first: once an item's metadata or asset has been
downloaded it is served from the cache indefinitely.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).
				With().
				Timestamp().
				Logger()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/config.json)")
	rootCmd.PersistentFlags().StringVarP(&country, "country", "c", "", "regional site country code (default \"ie\", env IKEA_COUNTRY)")
	rootCmd.PersistentFlags().StringVarP(&language, "language", "l", "", "regional site language code (default \"en\", env IKEA_LANGUAGE)")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "root directory of the asset cache (default \"cache\", env IKEA_CACHE_DIR)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "timeout for HTTP requests")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newMetadataCmd())
	rootCmd.AddCommand(newModelCmd())
	rootCmd.AddCommand(newThumbnailCmd())
	rootCmd.AddCommand(newExistsCmd())
	rootCmd.AddCommand(newRegionsCmd())

	return rootCmd
}

// envOr returns the value of the environment variable when set, otherwise
// the fallback.
func envOr(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// InitConfigWithError resolves the effective configuration from the config
// file, CLI flags, and environment variables.
func InitConfigWithError() (config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return cfg, nil
	}

	builder := config.WithDefault().
		WithCountry(envOr("IKEA_COUNTRY", "ie")).
		WithLanguage(envOr("IKEA_LANGUAGE", "en")).
		WithCacheDir(envOr("IKEA_CACHE_DIR", "cache"))

	if country != "" {
		builder = builder.WithCountry(country)
	}
	if language != "" {
		builder = builder.WithLanguage(language)
	}
	if cacheDir != "" {
		builder = builder.WithCacheDir(cacheDir)
	}
	if timeout > 0 {
		builder = builder.WithTimeout(timeout)
	}
	if userAgent != "" {
		builder = builder.WithUserAgent(userAgent)
	}

	return builder.Build()
}

// newClient wires the configured cache, metadata recorder, and catalog
// client together for one command invocation.
func newClient() (*catalog.Client, error) {
	cfg, err := InitConfigWithError()
	if err != nil {
		return nil, err
	}
	store := cache.New(cfg.CacheDir())
	recorder := metadata.NewRecorder(logger)
	return catalog.New(cfg, &store, &recorder), nil
}

func ResetFlags() {
	cfgFile = ""
	country = ""
	language = ""
	cacheDir = ""
	timeout = 0
	userAgent = ""
	verbose = false
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetCountryForTest(c string) {
	country = c
}

func SetLanguageForTest(l string) {
	language = l
}

func SetCacheDirForTest(dir string) {
	cacheDir = dir
}

func SetTimeoutForTest(t time.Duration) {
	timeout = t
}

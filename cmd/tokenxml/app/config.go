package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/SlightlyCircuitous/update-token-xml/pkg/constants"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/errors"
)

// envPrefix namespaces environment variables, e.g. TOKENXML_API_URL.
const envPrefix = "TOKENXML"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Upstream
	APIURL         string
	RateLimitDelay time.Duration
	HTTPTimeout    time.Duration
	UserAgent      string

	// Page cache
	CachePath string
	CacheTTL  time.Duration

	// Outputs
	OutputDir   string
	MetricsFile string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (TOKENXML_*)
// 3. .env files
// 4. Config file (configFile, or ~/.tokenxml.yaml / ./.tokenxml.yaml)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_url", constants.ScryfallAPIURL)
	v.SetDefault("rate_limit_delay", constants.ScryfallRateLimitDelay)
	v.SetDefault("http_timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("user_agent", constants.DefaultUserAgent)
	v.SetDefault("cache_ttl", constants.DefaultCacheTTL)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	if configFile == "" {
		configFile = v.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config file", "cannot read "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".tokenxml")
		// A missing default config file is not an error.
		_ = v.ReadInConfig()
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		APIURL:         v.GetString("api_url"),
		RateLimitDelay: v.GetDuration("rate_limit_delay"),
		HTTPTimeout:    v.GetDuration("http_timeout"),
		UserAgent:      v.GetString("user_agent"),

		CachePath: v.GetString("cache_path"),
		CacheTTL:  v.GetDuration("cache_ttl"),

		OutputDir:   v.GetString("output_dir"),
		MetricsFile: v.GetString("metrics_file"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is loaded first so its values win; godotenv never overrides
// variables that are already set.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

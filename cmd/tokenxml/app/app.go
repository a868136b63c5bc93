// Package app provides the application context and dependency management
// for the tokenxml CLI. It centralizes configuration, logging and the
// construction of tokenxml clients.
package app

import (
	"github.com/rs/zerolog"

	tokenxml "github.com/SlightlyCircuitous/update-token-xml"
	"github.com/SlightlyCircuitous/update-token-xml/internal/cmd/application"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/errors"
)

// App represents the tokenxml application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// OutputDir returns the configured output directory.
func (a *App) OutputDir() string {
	return a.config.OutputDir
}

// MetricsFile returns the configured metrics textfile path.
func (a *App) MetricsFile() string {
	return a.config.MetricsFile
}

// Client creates a tokenxml client from the configuration. opts are applied
// after the configured options and win over them.
func (a *App) Client(opts ...tokenxml.Option) (tokenxml.Client, error) {
	client, err := tokenxml.New(append(a.clientOptions(), opts...)...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}
	return client, nil
}

// clientOptions constructs client options from the app configuration.
func (a *App) clientOptions() []tokenxml.Option {
	c := a.config
	opts := []tokenxml.Option{
		tokenxml.WithOutputDir(c.OutputDir),
	}
	if c.APIURL != "" {
		opts = append(opts, tokenxml.WithAPIURL(c.APIURL))
	}
	if c.RateLimitDelay > 0 {
		opts = append(opts, tokenxml.WithRateLimitDelay(c.RateLimitDelay))
	}
	if c.HTTPTimeout > 0 {
		opts = append(opts, tokenxml.WithHTTPTimeout(c.HTTPTimeout))
	}
	if c.UserAgent != "" {
		opts = append(opts, tokenxml.WithUserAgent(c.UserAgent))
	}
	if c.CachePath != "" {
		opts = append(opts, tokenxml.WithCache(c.CachePath, c.CacheTTL))
	}
	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

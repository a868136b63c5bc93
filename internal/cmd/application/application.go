// Package application provides the application interface for tokenxml commands.
//
// Commands accept this interface rather than the concrete App type so they
// can be tested with Mock.
//
//	mock := &application.Mock{
//	    ClientFunc: func(opts ...tokenxml.Option) (tokenxml.Client, error) {
//	        return tokenxml.New(append(opts, tokenxml.WithFetcher(fake))...)
//	    },
//	}
//	cmd := update.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	tokenxml "github.com/SlightlyCircuitous/update-token-xml"
)

// Application provides the application interface that commands need.
type Application interface {
	// Client returns a tokenxml client configured from the application
	// config. Extra options are applied after the configured ones.
	Client(opts ...tokenxml.Option) (tokenxml.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (text, table, json, yaml).
	OutputFormat() string

	// OutputDir returns the configured directory for generated files.
	OutputDir() string

	// MetricsFile returns the configured Prometheus textfile path, if any.
	MetricsFile() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}

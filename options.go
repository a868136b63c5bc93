package tokenxml

import (
	"time"

	"github.com/SlightlyCircuitous/update-token-xml/pkg/constants"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/errors"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/tokens"
)

// Option is a function that configures a Client instance.
type Option func(*options) error

// options holds the client configuration.
type options struct {
	fetcher        tokens.Fetcher
	outputDir      string
	apiURL         string
	rateLimitDelay time.Duration
	httpTimeout    time.Duration
	userAgent      string
	cachePath      string
	cacheTTL       time.Duration
}

func defaults() *options {
	return &options{
		apiURL:         constants.ScryfallAPIURL,
		rateLimitDelay: constants.ScryfallRateLimitDelay,
		httpTimeout:    constants.DefaultHTTPTimeout,
		userAgent:      constants.DefaultUserAgent,
		cacheTTL:       constants.DefaultCacheTTL,
	}
}

func (o *options) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return err
		}
	}
	return nil
}

// WithFetcher replaces the upstream source. The remaining source options
// are ignored.
func WithFetcher(f tokens.Fetcher) Option {
	return func(o *options) error {
		if f == nil {
			return errors.NewValidationError("fetcher", nil, "cannot be nil")
		}
		o.fetcher = f
		return nil
	}
}

// WithOutputDir sets the directory the output files are written to.
// The default is the working directory.
func WithOutputDir(dir string) Option {
	return func(o *options) error {
		o.outputDir = dir
		return nil
	}
}

// WithAPIURL points the default source at another Scryfall-compatible host.
func WithAPIURL(url string) Option {
	return func(o *options) error {
		if url == "" {
			return errors.NewValidationError("api_url", url, "cannot be empty")
		}
		o.apiURL = url
		return nil
	}
}

// WithRateLimitDelay sets the pause between page requests.
func WithRateLimitDelay(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return errors.NewValidationError("rate_limit_delay", d, "cannot be negative")
		}
		o.rateLimitDelay = d
		return nil
	}
}

// WithHTTPTimeout sets the per-request timeout.
func WithHTTPTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return errors.NewValidationError("http_timeout", d, "must be positive")
		}
		o.httpTimeout = d
		return nil
	}
}

// WithUserAgent sets the User-Agent sent upstream.
func WithUserAgent(ua string) Option {
	return func(o *options) error {
		o.userAgent = ua
		return nil
	}
}

// WithCache enables the SQLite page cache at path. A non-positive ttl uses
// the default.
func WithCache(path string, ttl time.Duration) Option {
	return func(o *options) error {
		o.cachePath = path
		if ttl > 0 {
			o.cacheTTL = ttl
		}
		return nil
	}
}

// UpdateOption configures a single Update call.
type UpdateOption func(*updateOptions)

type updateOptions struct {
	dryRun          bool
	query           string
	skipExistingSet bool
	metricsFile     string
}

func newUpdateOptions(opts ...UpdateOption) *updateOptions {
	uo := &updateOptions{}
	for _, opt := range opts {
		opt(uo)
	}
	return uo
}

// WithDryRun runs the sync without writing the output files.
func WithDryRun(dryRun bool) UpdateOption {
	return func(uo *updateOptions) {
		uo.dryRun = dryRun
	}
}

// WithQuery overrides the upstream search query. The default selects every
// token of the set.
func WithQuery(query string) UpdateOption {
	return func(uo *updateOptions) {
		uo.query = query
	}
}

// WithSkipExistingSet avoids a second provenance line for a set an entry
// already lists.
func WithSkipExistingSet(skip bool) UpdateOption {
	return func(uo *updateOptions) {
		uo.skipExistingSet = skip
	}
}

// WithMetricsFile writes run counters in the Prometheus text format to path.
func WithMetricsFile(path string) UpdateOption {
	return func(uo *updateOptions) {
		uo.metricsFile = path
	}
}

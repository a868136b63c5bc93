// Package tokenxml keeps a Cockatrice token database in step with Scryfall.
//
// A Client fetches the tokens of one set, appends provenance lines to the
// catalog entries it already knows and synthesizes entries for the rest.
// Two files are written per run: the new entries on their own and the
// amended catalog.
//
// Example usage:
//
//	client, err := tokenxml.New(tokenxml.WithOutputDir("out"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	result, err := client.Update(ctx, "mh3", "tokens.xml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(result.Summary())
package tokenxml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SlightlyCircuitous/update-token-xml/internal/cache"
	"github.com/SlightlyCircuitous/update-token-xml/internal/metrics"
	"github.com/SlightlyCircuitous/update-token-xml/internal/sources/scryfall"
	"github.com/SlightlyCircuitous/update-token-xml/internal/transport"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/cockatrice"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/constants"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/errors"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/logging"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/tokens"
)

// Client runs catalog updates.
type Client interface {
	// Update synchronizes the catalog at catalogPath with the tokens of setCode.
	Update(ctx context.Context, setCode, catalogPath string, opts ...UpdateOption) (*Result, error)

	// Hooks provides access to event callback registration
	Hooks

	// Close releases the page cache, if one is open.
	Close() error
}

// client is the internal implementation of the Client interface.
type client struct {
	options *options
	fetcher tokens.Fetcher
	cache   *cache.Cache
	hooks   *hooks
}

// New creates a Client. Without WithFetcher the client talks to the
// Scryfall API, through the page cache when WithCache is given.
func New(opts ...Option) (Client, error) {
	o := defaults()
	if err := o.apply(opts...); err != nil {
		return nil, err
	}

	c := &client{
		options: o,
		fetcher: o.fetcher,
		hooks:   newHooks(),
	}

	if c.fetcher == nil {
		sourceOpts := []scryfall.Option{
			scryfall.WithBaseURL(o.apiURL),
			scryfall.WithDelay(o.rateLimitDelay),
			scryfall.WithTransport(transport.New(
				transport.WithTimeout(o.httpTimeout),
				transport.WithUserAgent(o.userAgent),
			)),
		}
		if o.cachePath != "" {
			pages, err := cache.Open(o.cachePath, o.cacheTTL)
			if err != nil {
				return nil, err
			}
			c.cache = pages
			sourceOpts = append(sourceOpts, scryfall.WithCache(pages))
		}
		c.fetcher = scryfall.NewClient(sourceOpts...)
	}

	return c, nil
}

// Close releases the page cache.
func (c *client) Close() error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Close()
}

// Update fetches the set, merges it into the catalog and writes both output
// files unless the run is a dry run. A fetch that fails after some pages
// still produces output from the records collected; a fetch that yields
// nothing aborts the run.
func (c *client) Update(ctx context.Context, setCode, catalogPath string, opts ...UpdateOption) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	setCode = strings.TrimSpace(setCode)
	if setCode == "" {
		return nil, errors.NewValidationError("set_code", setCode, "cannot be empty")
	}
	if catalogPath == "" {
		return nil, errors.NewValidationError("catalog", catalogPath, "path cannot be empty")
	}

	uo := newUpdateOptions(opts...)
	start := time.Now()

	ctx = logging.WithSet(logging.WithRunID(ctx), setCode)
	logger := logging.FromContext(ctx)

	catalog, err := cockatrice.Load(catalogPath)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("catalog", catalogPath).Int("entries", catalog.Len()).Msg("Catalog loaded")

	query := uo.query
	if query == "" {
		query = tokens.SetQuery(setCode)
	}
	records, fetchErr := c.fetcher.FetchRecords(logging.WithQuery(ctx, query), query)
	if fetchErr != nil {
		if len(records) == 0 {
			return nil, fetchErr
		}
		logger.Warn().Err(fetchErr).Int("records", len(records)).Msg("Continuing with partial upstream results")
	}
	logger.Info().Int("records", len(records)).Msg("Upstream records fetched")

	var recorder *metrics.Recorder
	syncOpts := []tokens.Option{
		tokens.WithLogger(logger),
		tokens.WithSkipExistingSet(uo.skipExistingSet),
		tokens.WithObserver(c.hooks.trigger),
	}
	if uo.metricsFile != "" {
		recorder = metrics.New(setCode)
		syncOpts = append(syncOpts, tokens.WithObserver(recorder.Observe))
	}

	synced, err := tokens.Sync(ctx, records, catalog, setCode, syncOpts...)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Result:      synced,
		RunID:       logging.RunID(ctx),
		NewFile:     filepath.Join(c.options.outputDir, fmt.Sprintf(constants.NewTokensFilePattern, setCode)),
		UpdatedFile: filepath.Join(c.options.outputDir, fmt.Sprintf(constants.UpdatedCatalogFilePattern, setCode)),
		DryRun:      uo.dryRun,
		FetchErr:    fetchErr,
	}

	if uo.dryRun {
		logger.Info().Bool("dry_run", true).Msg("Dry run completed - no files written")
	} else if err := c.write(result); err != nil {
		return nil, err
	}

	result.Elapsed = time.Since(start)
	if recorder != nil {
		recorder.Finish(synced, result.Elapsed)
		if err := recorder.WriteTextfile(uo.metricsFile); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (c *client) write(result *Result) error {
	if dir := c.options.outputDir; dir != "" {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("create", dir, err)
		}
	}
	if err := cockatrice.Save(result.NewFile, result.New, false); err != nil {
		return err
	}
	return cockatrice.Save(result.UpdatedFile, result.Catalog, true)
}

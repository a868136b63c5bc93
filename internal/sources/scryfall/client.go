// Package scryfall fetches token records from the Scryfall search API.
package scryfall

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/SlightlyCircuitous/update-token-xml/internal/transport"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/constants"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/errors"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/logging"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/scryfall"
)

// Source is the name used in errors and log fields.
const Source = "scryfall"

// PageCache stores raw search pages keyed by URL.
type PageCache interface {
	Get(ctx context.Context, url string) ([]byte, bool, error)
	Put(ctx context.Context, url string, body []byte) error
}

// Client pages through search results one request at a time, waiting a
// fixed delay between requests.
type Client struct {
	transport *transport.Client
	baseURL   string
	delay     time.Duration
	cache     PageCache
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API host.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithDelay sets the pause between page requests. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.delay = d
		}
	}
}

// WithTransport sets the HTTP transport.
func WithTransport(t *transport.Client) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithCache serves pages from cache when possible and stores fresh ones.
func WithCache(pc PageCache) Option {
	return func(c *Client) {
		c.cache = pc
	}
}

// NewClient creates a search client with the default host and delay.
func NewClient(opts ...Option) *Client {
	c := &Client{
		transport: transport.New(),
		baseURL:   constants.ScryfallAPIURL,
		delay:     constants.ScryfallRateLimitDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchURL returns the first page URL for query.
func (c *Client) SearchURL(query string) string {
	return c.baseURL + constants.ScryfallSearchPath + "?q=" + url.QueryEscape(query)
}

// FetchRecords follows next_page links until the result set is exhausted.
// When a page fails, the records from earlier pages are returned together
// with an *errors.FetchError naming the failed page.
func (c *Client) FetchRecords(ctx context.Context, query string) ([]scryfall.Card, error) {
	logger := logging.FromContext(ctx).With().Str("source", Source).Str("query", query).Logger()

	var cards []scryfall.Card
	next := c.SearchURL(query)
	for page := 1; next != ""; page++ {
		if page > 1 && c.delay > 0 {
			select {
			case <-ctx.Done():
				return cards, errors.NewFetchError(query, page, fmt.Errorf("%w: %w", errors.ErrCanceled, ctx.Err()))
			case <-time.After(c.delay):
			}
		}

		list, err := c.fetchPage(ctx, next)
		if err != nil {
			logger.Error().Err(err).Int("page", page).Int("collected", len(cards)).Msg("Error occurred downloading page")
			return cards, errors.NewFetchError(query, page, err)
		}

		cards = append(cards, list.Data...)
		logger.Debug().Int("page", page).Int("records", len(list.Data)).Int("total", list.TotalCards).Msg("Fetched page")

		if !list.HasMore {
			break
		}
		next = list.NextPage
	}

	return cards, nil
}

func (c *Client) fetchPage(ctx context.Context, pageURL string) (*scryfall.List, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrCanceled, err)
	}

	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, pageURL)
		if err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("url", pageURL).Msg("Page cache read failed")
		} else if ok {
			var list scryfall.List
			if err := transport.DecodeJSON(body, Source, &list); err == nil && !list.IsError() {
				return &list, nil
			}
		}
	}

	resp, err := c.transport.Get(ctx, pageURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrCanceled, err)
		}
		return nil, &errors.APIError{Source: Source, Endpoint: pageURL, Message: "request failed", Err: err}
	}

	body, readErr := transport.ReadResponse(resp, Source)

	var list scryfall.List
	if len(body) > 0 {
		if err := transport.DecodeJSON(body, Source, &list); err != nil && readErr == nil {
			return nil, err
		}
	}

	if readErr != nil || list.IsError() {
		apiErr := &errors.APIError{Source: Source, StatusCode: list.Status, Message: list.Details, Endpoint: pageURL}
		if readErr != nil {
			var transportErr *errors.APIError
			if errors.As(readErr, &transportErr) {
				apiErr.StatusCode = transportErr.StatusCode
				if apiErr.Message == "" {
					apiErr.Message = transportErr.Message
				}
			} else {
				return nil, readErr
			}
		}
		if apiErr.Message == "" {
			apiErr.Message = "upstream returned an error object"
		}
		return nil, apiErr
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, pageURL, body); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("url", pageURL).Msg("Page cache write failed")
		}
	}

	return &list, nil
}

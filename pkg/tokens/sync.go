package tokens

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/SlightlyCircuitous/update-token-xml/pkg/cockatrice"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/errors"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/logging"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/scryfall"
)

// Reminder is printed after every run: the engine leaves link placeholders
// and name disambiguation to the operator.
const Reminder = "Please check entries for accuracy, fill in related and reverse-related elements,\nand add spaces after non-unique token names as necessary."

// Fetcher retrieves upstream records for a search query. On a failed page
// it returns the records collected so far together with the error.
type Fetcher interface {
	FetchRecords(ctx context.Context, query string) ([]scryfall.Card, error)
}

// SetQuery is the Scryfall search query selecting the tokens of a set.
func SetQuery(setCode string) string {
	return "s:t" + strings.ToLower(setCode)
}

// Outcome is the result of synchronizing one normalized record.
type Outcome struct {
	Record Record
	// Matches is the number of catalog entries that received a set line.
	Matches int
	// Created is the synthesized entry when Matches is zero.
	Created *cockatrice.Card
}

// IsReprint reports whether the record matched existing entries.
func (o Outcome) IsReprint() bool {
	return o.Matches > 0
}

// Result is the outcome of one Sync run.
type Result struct {
	SetCode string

	// Catalog is the input catalog, amended in place with new set lines.
	Catalog *cockatrice.Database
	// New holds only the synthesized entries.
	New *cockatrice.Database

	NewCount         int
	ReprintCount     int
	DoubleFacedCount int
	SkippedCount     int

	Outcomes []Outcome
	// Diagnostics collects skipped records and entries flagged for manual review.
	Diagnostics []error
}

// Summary renders the operator summary naming the two output files.
func (r *Result) Summary(newFile, updatedFile string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Created %d new token entries in %s\n", r.NewCount, newFile)
	fmt.Fprintf(&b, "Appended set lines for %d reprinted tokens in %s\n", r.ReprintCount, updatedFile)
	b.WriteString(Reminder)
	b.WriteString("\n")
	return b.String()
}

// Option configures a Sync run.
type Option func(*options)

type options struct {
	logger          *zerolog.Logger
	observers       []func(Outcome)
	skipExistingSet bool
}

// WithLogger sets the logger used for per-record diagnostics. The default
// is the logger carried by the context.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithObserver registers a callback invoked after each record is matched or synthesized.
func WithObserver(fn func(Outcome)) Option {
	return func(o *options) {
		o.observers = append(o.observers, fn)
	}
}

// WithSkipExistingSet stops the matcher from adding a set line to an entry
// that already has one for the same set. The match still counts as a reprint.
func WithSkipExistingSet(skip bool) Option {
	return func(o *options) {
		o.skipExistingSet = skip
	}
}

// Sync matches every record against catalog and synthesizes entries for the
// ones it does not know. Double-faced records are processed face by face.
// A record that cannot be normalized is skipped and reported in
// Result.Diagnostics; the run continues.
func Sync(ctx context.Context, records []scryfall.Card, catalog *cockatrice.Database, setCode string, opts ...Option) (*Result, error) {
	if strings.TrimSpace(setCode) == "" {
		return nil, errors.NewValidationError("set_code", setCode, "cannot be empty")
	}
	if catalog == nil {
		return nil, errors.NewValidationError("catalog", nil, "cannot be nil")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	result := &Result{
		SetCode: setCode,
		Catalog: catalog,
		New:     cockatrice.NewTokens(),
	}

	for i := range records {
		card := &records[i]
		if card.Layout.IsDoubleFaced() {
			result.DoubleFacedCount++
		}

		for _, face := range card.Faces() {
			rec, err := Normalize(face)
			if err != nil {
				logger.Warn().Err(err).Str("card", card.Name).Msg("Skipping record")
				result.SkippedCount++
				result.Diagnostics = append(result.Diagnostics, err)
				continue
			}

			outcome := Outcome{Record: rec}
			outcome.Matches = match(catalog, rec, setCode, o.skipExistingSet)
			if outcome.IsReprint() {
				result.ReprintCount += outcome.Matches
				logger.Debug().Str("token", rec.Name).Int("matches", outcome.Matches).Msg("Reprint found")
			} else {
				entry, diag := Synthesize(rec, setCode)
				if diag != nil {
					logger.Warn().Err(diag).Str("token", rec.Name).Msg("Entry needs manual review")
					result.Diagnostics = append(result.Diagnostics, diag)
				}
				outcome.Created = entry
				result.New.Append(entry)
				result.NewCount++
				logger.Debug().Str("token", entry.Name).Msg("New token")
			}

			result.Outcomes = append(result.Outcomes, outcome)
			for _, fn := range o.observers {
				fn(outcome)
			}
		}
	}

	logger.Info().
		Int("new", result.NewCount).
		Int("reprints", result.ReprintCount).
		Int("double_faced", result.DoubleFacedCount).
		Int("skipped", result.SkippedCount).
		Msg("Sync finished")

	return result, nil
}

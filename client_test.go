package tokenxml

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SlightlyCircuitous/update-token-xml/pkg/cockatrice"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/errors"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/logging"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/scryfall"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/tokens"
)

type fakeFetcher struct {
	records []scryfall.Card
	err     error
	queries []string
}

func (f *fakeFetcher) FetchRecords(_ context.Context, query string) ([]scryfall.Card, error) {
	f.queries = append(f.queries, query)
	return f.records, f.err
}

func mh3Records() []scryfall.Card {
	return []scryfall.Card{
		{
			Object:    "card",
			Layout:    scryfall.LayoutToken,
			Name:      "Goblin",
			TypeLine:  "Token Creature — Goblin",
			Colors:    []string{"R"},
			Power:     scryfall.String("1"),
			Toughness: scryfall.String("1"),
			ImageURIs: &scryfall.ImageURIs{Large: "https://x/goblin-mh3.jpg"},
		},
		{
			Object:     "card",
			Layout:     scryfall.LayoutToken,
			Name:       "Treasure",
			OracleText: scryfall.String("{T}, Sacrifice this artifact: Add one mana of any color."),
			TypeLine:   "Token Artifact — Treasure",
			Colors:     []string{},
			ImageURIs:  &scryfall.ImageURIs{Large: "https://x/treasure-mh3.jpg"},
		},
	}
}

func newTestClient(t *testing.T, f tokens.Fetcher) (Client, string) {
	t.Helper()
	logging.DisableLoggingForTest(t)
	out := filepath.Join(t.TempDir(), "out")
	client, err := New(WithFetcher(f), WithOutputDir(out))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, out
}

func TestUpdateWritesOutputs(t *testing.T) {
	fetcher := &fakeFetcher{records: mh3Records()}
	client, out := newTestClient(t, fetcher)

	result, err := client.Update(context.Background(), "mh3", filepath.Join("testdata", "tokens.xml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"s:tmh3"}, fetcher.queries)
	assert.Equal(t, 1, result.NewCount)
	assert.Equal(t, 1, result.ReprintCount)
	assert.NotEmpty(t, result.RunID)
	assert.False(t, result.Partial())
	assert.Equal(t, filepath.Join(out, "mh3_new_tokens.xml"), result.NewFile)
	assert.Equal(t, filepath.Join(out, "token_file_mh3_update.xml"), result.UpdatedFile)

	newDoc, err := os.ReadFile(result.NewFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(newDoc), "<newtokens>\n"), "new tokens file has no declaration")
	assert.Contains(t, string(newDoc), "<name>Treasure Token</name>")
	assert.Contains(t, string(newDoc), `<set picURL="https://x/treasure-mh3.jpg">MH3</set>`)

	updated, err := os.ReadFile(result.UpdatedFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(updated), "<?xml"))
	mh3 := strings.Index(string(updated), `<set picURL="https://x/goblin-mh3.jpg">MH3</set>`)
	m19 := strings.Index(string(updated), `<set picURL="https://x/goblin-m19.jpg">M19</set>`)
	require.Positive(t, mh3)
	assert.Less(t, mh3, m19)

	reloaded, err := cockatrice.Load(result.UpdatedFile)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.Len())

	summary := result.Summary()
	assert.Contains(t, summary, "Created 1 new token entries in "+result.NewFile)
	assert.Contains(t, summary, "Appended set lines for 1 reprinted tokens in "+result.UpdatedFile)
	assert.Contains(t, summary, tokens.Reminder)
}

func TestUpdateDryRun(t *testing.T) {
	client, out := newTestClient(t, &fakeFetcher{records: mh3Records()})

	result, err := client.Update(context.Background(), "mh3", filepath.Join("testdata", "tokens.xml"), WithDryRun(true))
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, 1, result.NewCount)

	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))

	summary := result.Summary()
	assert.Contains(t, summary, "Dry run: would create 1 new token entries in "+result.NewFile)
	assert.Contains(t, summary, "Dry run: would append set lines for 1 reprinted tokens in "+result.UpdatedFile)
	assert.Contains(t, summary, "No files were written.")
	assert.NotContains(t, summary, "Created ")
}

func TestUpdateCustomQuery(t *testing.T) {
	fetcher := &fakeFetcher{records: mh3Records()}
	client, _ := newTestClient(t, fetcher)

	_, err := client.Update(context.Background(), "mh3", filepath.Join("testdata", "tokens.xml"),
		WithQuery("s:tmh3 is:dfc"), WithDryRun(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"s:tmh3 is:dfc"}, fetcher.queries)
}

func TestUpdateFetchFailure(t *testing.T) {
	fetchErr := errors.NewFetchError("s:tmh3", 2, errors.New("boom"))

	t.Run("nothing collected aborts", func(t *testing.T) {
		client, out := newTestClient(t, &fakeFetcher{err: fetchErr})
		_, err := client.Update(context.Background(), "mh3", filepath.Join("testdata", "tokens.xml"))
		assert.True(t, errors.IsFetchError(err))
		_, statErr := os.Stat(out)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("partial results are used", func(t *testing.T) {
		client, _ := newTestClient(t, &fakeFetcher{records: mh3Records()[:1], err: fetchErr})
		result, err := client.Update(context.Background(), "mh3", filepath.Join("testdata", "tokens.xml"))
		require.NoError(t, err)
		assert.True(t, result.Partial())
		assert.Equal(t, 1, result.ReprintCount)
		assert.FileExists(t, result.UpdatedFile)
	})
}

func TestUpdateHooks(t *testing.T) {
	client, _ := newTestClient(t, &fakeFetcher{records: mh3Records()})

	var added []string
	var reprints []string
	client.OnTokenAdded(func(entry *cockatrice.Card) { added = append(added, entry.Name) })
	client.OnReprint(func(rec tokens.Record, matches int) {
		assert.Equal(t, 1, matches)
		reprints = append(reprints, rec.Name)
	})

	_, err := client.Update(context.Background(), "mh3", filepath.Join("testdata", "tokens.xml"), WithDryRun(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"Treasure Token"}, added)
	assert.Equal(t, []string{"Goblin"}, reprints)
}

func TestUpdateMetricsFile(t *testing.T) {
	client, _ := newTestClient(t, &fakeFetcher{records: mh3Records()})
	path := filepath.Join(t.TempDir(), "tokenxml.prom")

	_, err := client.Update(context.Background(), "mh3", filepath.Join("testdata", "tokens.xml"),
		WithDryRun(true), WithMetricsFile(path))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `tokenxml_records_total{outcome="new",set="mh3"} 1`)
}

func TestUpdateValidation(t *testing.T) {
	client, _ := newTestClient(t, &fakeFetcher{})

	_, err := client.Update(context.Background(), "  ", "tokens.xml")
	assert.True(t, errors.IsValidationError(err))

	_, err = client.Update(context.Background(), "mh3", "")
	assert.True(t, errors.IsValidationError(err))

	_, err = client.Update(context.Background(), "mh3", filepath.Join(t.TempDir(), "missing.xml"))
	var ioErr *errors.IOError
	assert.True(t, errors.As(err, &ioErr))
}

func TestNewOptionValidation(t *testing.T) {
	for name, opt := range map[string]Option{
		"nil fetcher":    WithFetcher(nil),
		"empty api url":  WithAPIURL(""),
		"negative delay": WithRateLimitDelay(-1),
		"zero timeout":   WithHTTPTimeout(0),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := New(opt)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestUpdateAgainstScryfallAPI(t *testing.T) {
	logging.DisableLoggingForTest(t)

	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "s:tmh3", r.URL.Query().Get("q"))
		_ = json.NewEncoder(w).Encode(scryfall.List{Object: "list", TotalCards: 2, Data: mh3Records()})
	}))
	defer server.Close()

	dir := t.TempDir()
	client, err := New(
		WithAPIURL(server.URL),
		WithRateLimitDelay(0),
		WithUserAgent("tokenxml-test"),
		WithCache(filepath.Join(dir, "cache", "pages.db"), 0),
		WithOutputDir(dir),
	)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	for range 2 {
		result, err := client.Update(context.Background(), "MH3", filepath.Join("testdata", "tokens.xml"), WithDryRun(true))
		require.NoError(t, err)
		assert.Equal(t, 1, result.NewCount)
		assert.Equal(t, 1, result.ReprintCount)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "second run is served from the page cache")
}

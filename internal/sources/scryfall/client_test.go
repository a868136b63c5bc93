package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SlightlyCircuitous/update-token-xml/internal/transport"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/errors"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/scryfall"
)

// pagedServer serves pages[i] for ?page=i+1 and links them with next_page.
func pagedServer(t *testing.T, pages ...[]string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/cards/search", r.URL.Path)
		assert.Equal(t, "s:tmh3", r.URL.Query().Get("q"))

		page := 1
		if p := r.URL.Query().Get("page"); p != "" {
			_, _ = fmt.Sscanf(p, "%d", &page)
		}
		list := scryfall.List{Object: "list", TotalCards: 3}
		for _, name := range pages[page-1] {
			list.Data = append(list.Data, scryfall.Card{Object: "card", Name: name, Layout: scryfall.LayoutToken})
		}
		if page < len(pages) {
			list.HasMore = true
			list.NextPage = fmt.Sprintf("%s/cards/search?q=s%%3Atmh3&page=%d", server.URL, page+1)
		}
		_ = json.NewEncoder(w).Encode(list)
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func names(cards []scryfall.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Name)
	}
	return out
}

func TestFetchRecordsPaginates(t *testing.T) {
	server, hits := pagedServer(t, []string{"Goblin", "Spirit"}, []string{"Treasure"})
	client := NewClient(WithBaseURL(server.URL+"/"), WithDelay(time.Millisecond))

	cards, err := client.FetchRecords(context.Background(), "s:tmh3")
	require.NoError(t, err)
	assert.Equal(t, []string{"Goblin", "Spirit", "Treasure"}, names(cards))
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}

func TestSearchURL(t *testing.T) {
	client := NewClient(WithBaseURL("https://api.example"))
	assert.Equal(t, "https://api.example/cards/search?q=s%3Atmh3", client.SearchURL("s:tmh3"))
}

func TestFetchRecordsWaitsBetweenPages(t *testing.T) {
	server, _ := pagedServer(t, []string{"A"}, []string{"B"}, []string{"C"})
	client := NewClient(WithBaseURL(server.URL), WithDelay(20*time.Millisecond))

	start := time.Now()
	cards, err := client.FetchRecords(context.Background(), "s:tmh3")
	require.NoError(t, err)
	assert.Len(t, cards, 3)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestFetchRecordsPartialOnErrorObject(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"object":"error","code":"bad_gateway","status":502,"details":"upstream hiccup"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(scryfall.List{
			Object:   "list",
			HasMore:  true,
			NextPage: server.URL + "/cards/search?q=x&page=2",
			Data:     []scryfall.Card{{Name: "Goblin"}},
		})
	}))
	defer server.Close()

	cards, err := NewClient(WithBaseURL(server.URL), WithDelay(0)).FetchRecords(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, []string{"Goblin"}, names(cards))

	var fetchErr *errors.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, 2, fetchErr.Page)
	assert.Equal(t, "x", fetchErr.Query)
	assert.True(t, errors.IsFetchError(err))
	assert.True(t, errors.Is(err, errors.ErrUpstreamUnavailable))

	var apiErr *errors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "upstream hiccup", apiErr.Message)
	assert.Equal(t, Source, apiErr.Source)
}

func TestFetchRecordsNoMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"object":"error","code":"not_found","status":404,"details":"Your query didn't match any cards."}`))
	}))
	defer server.Close()

	cards, err := NewClient(WithBaseURL(server.URL)).FetchRecords(context.Background(), "s:tzzz")
	assert.Empty(t, cards)
	var apiErr *errors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "didn't match")
}

func TestFetchRecordsErrorObjectWith200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"object":"error","details":"bad query"}`))
	}))
	defer server.Close()

	_, err := NewClient(WithBaseURL(server.URL)).FetchRecords(context.Background(), "q")
	assert.True(t, errors.IsFetchError(err))
	assert.Contains(t, err.Error(), "bad query")
}

func TestFetchRecordsCanceled(t *testing.T) {
	server, hits := pagedServer(t, []string{"A"}, []string{"B"})
	client := NewClient(WithBaseURL(server.URL), WithDelay(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	cards, err := client.FetchRecords(ctx, "s:tmh3")
	assert.Equal(t, []string{"A"}, names(cards))
	assert.True(t, errors.IsCanceled(err))
	assert.True(t, errors.IsFetchError(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestFetchRecordsUserAgent(t *testing.T) {
	var ua string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.UserAgent()
		_, _ = w.Write([]byte(`{"object":"list","has_more":false,"data":[]}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithTransport(transport.New(transport.WithUserAgent("tokenxml-test"))))
	cards, err := client.FetchRecords(context.Background(), "q")
	require.NoError(t, err)
	assert.Empty(t, cards)
	assert.Equal(t, "tokenxml-test", ua)
}

type memoryCache struct {
	mu    sync.Mutex
	pages map[string][]byte
	puts  int
}

func (m *memoryCache) Get(_ context.Context, url string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.pages[url]
	return b, ok, nil
}

func (m *memoryCache) Put(_ context.Context, url string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[url] = body
	m.puts++
	return nil
}

func TestFetchRecordsUsesCache(t *testing.T) {
	server, hits := pagedServer(t, []string{"Goblin"}, []string{"Spirit"})
	cache := &memoryCache{pages: map[string][]byte{}}
	client := NewClient(WithBaseURL(server.URL), WithDelay(0), WithCache(cache))

	first, err := client.FetchRecords(context.Background(), "s:tmh3")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
	assert.Equal(t, 2, cache.puts)

	second, err := client.FetchRecords(context.Background(), "s:tmh3")
	require.NoError(t, err)
	assert.Equal(t, names(first), names(second))
	assert.Equal(t, int32(2), atomic.LoadInt32(hits), "second run served from cache")
}

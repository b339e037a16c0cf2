package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobscan/internal/db"
)

func TestDefaultCachedFetcherConfig(t *testing.T) {
	config := DefaultCachedFetcherConfig()

	require.NotNil(t, config)
	assert.Equal(t, db.DefaultPageCacheTTL, config.CacheTTL)
	assert.False(t, config.SkipCache)
	assert.NotNil(t, config.Options)
}

func TestNewCachedFetcher_Defaults(t *testing.T) {
	for _, config := range []*CachedFetcherConfig{nil, {}} {
		fetcher := NewCachedFetcher(nil, config)
		require.NotNil(t, fetcher)
		assert.Equal(t, db.DefaultPageCacheTTL, fetcher.cacheTTL)
		assert.NotNil(t, fetcher.options)
	}
}

func TestCachedFetcher_NoDatabase(t *testing.T) {
	// Without a database the fetcher degrades to a plain fetch
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><main>Senior engineer opening</main></body></html>"))
	}))
	defer server.Close()

	fetcher := NewCachedFetcher(nil, nil)
	result, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.Contains(t, result.Text, "Senior engineer opening")

	assert.NoError(t, fetcher.InvalidateCache(context.Background(), server.URL))
}

func TestDerefHelpers(t *testing.T) {
	s := "hello"
	assert.Equal(t, "hello", derefString(&s))
	assert.Equal(t, "", derefString(nil))

	n := 200
	assert.Equal(t, 200, derefInt(&n))
	assert.Equal(t, 0, derefInt(nil))
}

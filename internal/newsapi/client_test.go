package newsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBody = `{
	"status": "ok",
	"totalResults": 2,
	"articles": [
		{"source": {"name": "Example Wire"}, "title": "First", "url": "https://example.com/1"},
		{"source": {"name": "Example Wire"}, "title": "Second", "url": "https://example.com/2"}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New("test-key", 5*time.Second).WithBaseURL(srv.URL), srv
}

func TestTopHeadlinesRequest(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(sampleBody))
	})

	arts, err := c.TopHeadlines(context.Background(), "in", "business", 0)
	require.NoError(t, err)
	require.Len(t, arts, 2)
	assert.Equal(t, "First", arts[0].Title)

	assert.Equal(t, "/top-headlines", gotPath)
	assert.Equal(t, "in", gotQuery.Get("country"))
	assert.Equal(t, "business", gotQuery.Get("category"))
	assert.Equal(t, "30", gotQuery.Get("pageSize"))
	assert.Equal(t, "test-key", gotQuery.Get("apiKey"))
	// The headlines endpoint takes no language parameter.
	assert.Empty(t, gotQuery.Get("language"))
}

func TestTopHeadlinesOmitsEmptyCategory(t *testing.T) {
	var gotQuery url.Values
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(sampleBody))
	})

	_, err := c.TopHeadlines(context.Background(), "us", "", 10)
	require.NoError(t, err)
	_, has := gotQuery["category"]
	assert.False(t, has)
	assert.Equal(t, "10", gotQuery.Get("pageSize"))
}

func TestEverythingRequest(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(sampleBody))
	})

	_, err := c.Everything(context.Background(), "rbi OR inflation", 2, 0)
	require.NoError(t, err)

	assert.Equal(t, "/everything", gotPath)
	assert.Equal(t, "rbi OR inflation", gotQuery.Get("q"))
	assert.Equal(t, "publishedAt", gotQuery.Get("sortBy"))
	assert.Equal(t, "en", gotQuery.Get("language"))
	assert.Equal(t, "50", gotQuery.Get("pageSize"))

	want := time.Now().UTC().AddDate(0, 0, -2).Format("2006-01-02")
	assert.Equal(t, want, gotQuery.Get("from"))
}

func TestNonSuccessBecomesProviderError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"status":"error","code":"rateLimited","message":"too many"}`))
	})

	_, err := c.TopHeadlines(context.Background(), "in", "general", 0)
	require.Error(t, err)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusTooManyRequests, perr.StatusCode)
	assert.Contains(t, perr.Body, "rateLimited")
}

func TestMalformedBodyIsAnError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := c.Everything(context.Background(), "anything", 2, 0)
	assert.Error(t, err)
}

package fetcher_test

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deaffirst/deafcheck/internal/adapters/outbound/fetcher"
	"github.com/deaffirst/deafcheck/internal/domain"
)

const samplePage = `<!DOCTYPE html>
<html lang="en"><head><title>Community Hub</title></head>
<body>
  <header role="banner"><h1>Community Hub</h1></header>
  <main><p>Visual-first content for everyone.</p></main>
</body></html>`

func newSource() *fetcher.Source {
	return fetcher.New(5*time.Second, 2*time.Second, 1<<20)
}

func TestFetch_URLTarget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "deafcheck")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	content, err := newSource().Fetch(context.Background(), domain.TargetURL(srv.URL), domain.FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Community Hub", content.Title)
	assert.Equal(t, "en", content.Language)
	assert.Equal(t, 1, content.Landmarks["banner"])
}

func TestFetch_RawHTMLNeverTouchesNetwork(t *testing.T) {
	content, err := newSource().Fetch(context.Background(), domain.TargetRawHTML(samplePage), domain.FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Community Hub", content.Title)
	assert.Empty(t, content.SourceURL)
}

func TestFetch_GzipBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte(samplePage))
		_ = gz.Close()
	}))
	defer srv.Close()

	content, err := newSource().Fetch(context.Background(), domain.TargetURL(srv.URL), domain.FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Community Hub", content.Title)
}

func TestFetch_HTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newSource().Fetch(context.Background(), domain.TargetURL(srv.URL), domain.FetchOptions{})
	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, domain.FetchHTTPStatus, fetchErr.Kind)
	assert.Contains(t, fetchErr.Detail, "404")
}

func TestFetch_ContentTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>" + strings.Repeat("x", 4096) + "</body></html>"))
	}))
	defer srv.Close()

	src := newSource()
	_, err := src.Fetch(context.Background(), domain.TargetURL(srv.URL), domain.FetchOptions{MaxBytes: 512})
	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, domain.FetchTooLarge, fetchErr.Kind)
}

func TestFetch_NonHTMLContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	_, err := newSource().Fetch(context.Background(), domain.TargetURL(srv.URL), domain.FetchOptions{})
	var parseErr *domain.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Detail, "application/pdf")
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	_, err := newSource().Fetch(context.Background(), domain.TargetURL(srv.URL), domain.FetchOptions{Timeout: 50 * time.Millisecond})
	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, domain.FetchTimeout, fetchErr.Kind)
}

func TestFetch_UnresolvableHost(t *testing.T) {
	_, err := newSource().Fetch(context.Background(), domain.TargetURL("http://unresolvable.invalid/"), domain.FetchOptions{})
	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, domain.FetchDNS, fetchErr.Kind)
}

func TestFetch_InvalidURL(t *testing.T) {
	_, err := newSource().Fetch(context.Background(), domain.TargetURL("not a url"), domain.FetchOptions{})
	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
}

package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/watchscout"
	wshttp "github.com/fwojciec/watchscout/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body><strong>45 listings</strong></body></html>"))
		}))
		defer server.Close()

		fetcher := wshttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body><strong>45 listings</strong></body></html>", html)
	})

	t.Run("sends browser headers", func(t *testing.T) {
		t.Parallel()

		headers := make(chan http.Header, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers <- r.Header.Clone()
		}))
		defer server.Close()

		fetcher := wshttp.NewFetcher(wshttp.WithHeaders(map[string]string{"Cookie": "session=abc"}))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		got := <-headers
		assert.Contains(t, got.Get("User-Agent"), "Mozilla/5.0")
		assert.Equal(t, "en-US,en;q=0.8", got.Get("Accept-Language"))
		assert.Equal(t, "session=abc", got.Get("Cookie"))
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		// Use a very short timeout that will expire before server responds
		fetcher := wshttp.NewFetcher(wshttp.WithTimeout(10 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, watchscout.EFETCH, watchscout.ErrorCode(err))
		assert.Zero(t, watchscout.ErrorStatus(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := wshttp.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		_, err := fetcher.Fetch(ctx, server.URL)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("returns EFETCH with status for non-2xx responses", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("blocked"))
		}))
		defer server.Close()

		fetcher := wshttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, watchscout.EFETCH, watchscout.ErrorCode(err))
		assert.Equal(t, http.StatusForbidden, watchscout.ErrorStatus(err))
		assert.Contains(t, err.Error(), "403")
	})

	t.Run("returns error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := wshttp.NewFetcher(wshttp.WithTimeout(100 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/search")
		require.Error(t, err)
		assert.Equal(t, watchscout.EFETCH, watchscout.ErrorCode(err))
		assert.Zero(t, watchscout.ErrorStatus(err))
	})

	t.Run("returns EFETCH when the connection is refused", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		fetcher := wshttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), url)
		require.Error(t, err)
		assert.Equal(t, watchscout.EFETCH, watchscout.ErrorCode(err))
		assert.Contains(t, err.Error(), url)
	})
}

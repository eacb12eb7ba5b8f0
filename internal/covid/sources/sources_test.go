package sources

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/csv", r.Header.Get("Accept"))
		_, _ = io.WriteString(w, "iso_code,location\nIND,India\n")
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.Client(), srv.URL)
	body, err := src.Fetch(context.Background())
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "iso_code,location\nIND,India\n", string(data))
	assert.Equal(t, "owid-http", src.Name())
}

func TestHTTPSourceDefaultURL(t *testing.T) {
	src := NewHTTPSource(http.DefaultClient, "")
	assert.Equal(t, DefaultURL, src.URL())
}

func TestHTTPSourceStatusErrors(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusTooManyRequests, errRateLimited},
		{http.StatusBadGateway, errServerError},
		{http.StatusNotFound, errUnexpected},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		_, err := NewHTTPSource(srv.Client(), srv.URL).Fetch(context.Background())
		assert.True(t, errors.Is(err, tt.want), "status %d: %v", tt.status, err)
		srv.Close()
	}
}

func TestHTTPSourceNoRetry(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.Client(), srv.URL).Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestHTTPSourceCircuitOpens(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.Client(), srv.URL)
	for i := 0; i < 3; i++ {
		_, err := src.Fetch(context.Background())
		require.Error(t, err)
	}

	_, err := src.Fetch(context.Background())
	assert.True(t, errors.Is(err, errCircuitOpen), "got %v", err)
	assert.Equal(t, 3, calls)
}

func TestHTTPSourceCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPSource(&http.Client{Timeout: time.Second}, "http://127.0.0.1:1").Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPSourceNoClient(t *testing.T) {
	_, err := NewHTTPSource(nil, "http://example.invalid").Fetch(context.Background())
	assert.ErrorIs(t, err, errNoHTTPClient)
}

func TestFileSource(t *testing.T) {
	src := NewFileSource(filepath.Join("..", "testdata", "owid_sample.csv"))
	assert.Contains(t, src.Name(), "owid_sample.csv")

	body, err := src.Fetch(context.Background())
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "United States")

	_, err = NewFileSource("does-not-exist.csv").Fetch(context.Background())
	assert.Error(t, err)
}

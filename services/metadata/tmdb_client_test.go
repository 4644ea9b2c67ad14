package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRetriesServerErrors(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := newTMDBClient("key", "en-US", server.Client())
	client.baseURL = server.URL

	var out struct {
		OK bool `json:"ok"`
	}
	err := client.get(context.Background(), "/ping", nil, &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, int64(3), calls.Load())
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTMDBClient("key", "en-US", server.Client())
	client.baseURL = server.URL

	var out map[string]any
	err := client.get(context.Background(), "/missing", nil, &out)
	require.Error(t, err)
	assert.Equal(t, int64(1), calls.Load(), "4xx responses must not be retried")
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/poster.jpg", ImageURL("/poster.jpg", ""))
	assert.Equal(t, "https://image.tmdb.org/t/p/w1280/bg.jpg", ImageURL("bg.jpg", BackdropSize))
	assert.Empty(t, ImageURL("  ", PosterSize))
}

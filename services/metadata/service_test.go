package metadata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shadowflix/models"
)

func newTestService(t *testing.T, handler http.Handler) (*Service, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := &Service{
		tmdb:  newTMDBClient("test-key", "en-US", server.Client()),
		cache: newFileCache(afero.NewMemMapFs(), "cache/metadata", 1),
	}
	svc.tmdb.baseURL = server.URL
	return svc, server
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func TestPopularDecodesResults(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/popular", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))
		writeJSON(t, w, models.MovieList{
			Page:    1,
			Results: []models.Movie{{ID: 101, Title: "Night Train", PosterPath: "/nt.jpg"}},
		})
	}))

	list, err := svc.Popular(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Results, 1)
	assert.Equal(t, "Night Train", list.Results[0].Title)
}

func TestListResponsesAreCached(t *testing.T) {
	var calls atomic.Int64
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(t, w, models.MovieList{Results: []models.Movie{{ID: 1, Title: "Cached"}}})
	}))

	_, err := svc.Trending(context.Background())
	require.NoError(t, err)
	_, err = svc.Trending(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), calls.Load(), "second fetch must come from cache")
}

func TestSearchSendsQueryAndPage(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "night train", r.URL.Query().Get("query"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		writeJSON(t, w, models.MovieList{Page: 2})
	}))

	list, err := svc.Search(context.Background(), "night train", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Page)
}

func TestDiscoverByGenreSortsByPopularity(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discover/movie", r.URL.Path)
		assert.Equal(t, "28", r.URL.Query().Get("with_genres"))
		assert.Equal(t, "popularity.desc", r.URL.Query().Get("sort_by"))
		writeJSON(t, w, models.MovieList{})
	}))

	_, err := svc.DiscoverByGenre(context.Background(), 28, 0)
	require.NoError(t, err)
}

func TestMovieDetailsAppendsVideosAndCredits(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/550", r.URL.Path)
		assert.Equal(t, "videos,credits", r.URL.Query().Get("append_to_response"))
		details := models.MovieDetails{Movie: models.Movie{ID: 550, Title: "Insomnia Club"}, Runtime: 139}
		details.Videos.Results = []models.Video{{Key: "abc", Site: "YouTube", Type: "Trailer"}}
		details.Credits.Cast = []models.CastMember{{Name: "Sam Lee", Character: "The Narrator"}}
		writeJSON(t, w, details)
	}))

	details, err := svc.MovieDetails(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, 139, details.Runtime)
	require.Len(t, details.Videos.Results, 1)
	require.Len(t, details.Credits.Cast, 1)
}

func TestFeaturedPicksFromTopTrending(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/trending/movie/week" {
			writeJSON(t, w, models.MovieList{Results: []models.Movie{
				{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}, {ID: 6}, {ID: 7},
			}})
			return
		}
		id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/movie/"), 10, 64)
		require.NoError(t, err)
		writeJSON(t, w, models.MovieDetails{Movie: models.Movie{ID: id, Title: "Hero"}})
	}))

	details, err := svc.Featured(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, details.ID, int64(1))
	assert.LessOrEqual(t, details.ID, int64(5), "featured title must come from the top five trending")
}

func TestFeaturedEmptyTrendingFails(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, models.MovieList{})
	}))

	_, err := svc.Featured(context.Background())
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestUnconfiguredKeyFails(t *testing.T) {
	svc := &Service{
		tmdb:  newTMDBClient("", "en-US", nil),
		cache: newFileCache(afero.NewMemMapFs(), "cache/metadata", 1),
	}

	_, err := svc.Popular(context.Background())
	assert.ErrorIs(t, err, errNotConfigured)
}

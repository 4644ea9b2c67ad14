package metadata

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"

	"shadowflix/models"
)

var ErrNoResults = errors.New("no titles available")

// Service exposes the movie metadata the pages render: browse rows, search,
// genres and single-title details. List responses are cached on disk with a
// TTL so repeated page loads don't refetch.
type Service struct {
	tmdb  *tmdbClient
	cache *fileCache
}

// NewService creates a metadata service. The filesystem is injected so
// tests can run the cache in memory.
func NewService(apiKey, language, cacheDir string, ttlHours int, fs afero.Fs) *Service {
	return &Service{
		tmdb:  newTMDBClient(apiKey, language, &http.Client{}),
		cache: newFileCache(fs, filepath.Join(cacheDir, "metadata"), ttlHours),
	}
}

// ClearCache removes all cached metadata files.
func (s *Service) ClearCache() error {
	return s.cache.clear()
}

func (s *Service) Trending(ctx context.Context) (models.MovieList, error) {
	return s.list(ctx, "/trending/movie/week", nil)
}

func (s *Service) Popular(ctx context.Context) (models.MovieList, error) {
	return s.list(ctx, "/movie/popular", nil)
}

func (s *Service) TopRated(ctx context.Context) (models.MovieList, error) {
	return s.list(ctx, "/movie/top_rated", nil)
}

func (s *Service) NowPlaying(ctx context.Context) (models.MovieList, error) {
	return s.list(ctx, "/movie/now_playing", nil)
}

func (s *Service) Upcoming(ctx context.Context) (models.MovieList, error) {
	return s.list(ctx, "/movie/upcoming", nil)
}

func (s *Service) TVPopular(ctx context.Context) (models.MovieList, error) {
	return s.list(ctx, "/tv/popular", nil)
}

func (s *Service) TVTopRated(ctx context.Context) (models.MovieList, error) {
	return s.list(ctx, "/tv/top_rated", nil)
}

// Search queries movies by title.
func (s *Service) Search(ctx context.Context, query string, page int) (models.MovieList, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(normalizePage(page)))
	return s.list(ctx, "/search/movie", params)
}

// Genres returns the movie genre list.
func (s *Service) Genres(ctx context.Context) (models.GenreList, error) {
	key := cacheKey("genres", s.tmdb.language)
	var cached models.GenreList
	if s.cache.get(key, &cached) {
		return cached, nil
	}

	var payload models.GenreList
	if err := s.tmdb.get(ctx, "/genre/movie/list", nil, &payload); err != nil {
		return models.GenreList{}, err
	}

	_ = s.cache.set(key, payload)
	return payload, nil
}

// DiscoverByGenre lists movies in a genre ordered by popularity.
func (s *Service) DiscoverByGenre(ctx context.Context, genreID int64, page int) (models.MovieList, error) {
	params := url.Values{}
	params.Set("with_genres", strconv.FormatInt(genreID, 10))
	params.Set("page", strconv.Itoa(normalizePage(page)))
	params.Set("sort_by", "popularity.desc")
	return s.list(ctx, "/discover/movie", params)
}

// MovieDetails fetches one title with its videos and credits appended.
func (s *Service) MovieDetails(ctx context.Context, id int64) (models.MovieDetails, error) {
	key := cacheKey("movie", strconv.FormatInt(id, 10), s.tmdb.language)
	var cached models.MovieDetails
	if s.cache.get(key, &cached) {
		return cached, nil
	}

	params := url.Values{}
	params.Set("append_to_response", "videos,credits")

	var payload models.MovieDetails
	endpoint := fmt.Sprintf("/movie/%d", id)
	if err := s.tmdb.get(ctx, endpoint, params, &payload); err != nil {
		return models.MovieDetails{}, err
	}

	_ = s.cache.set(key, payload)
	return payload, nil
}

// Featured picks one of the top trending titles at random and returns its
// full details, for the landing page hero.
func (s *Service) Featured(ctx context.Context) (models.MovieDetails, error) {
	trending, err := s.Trending(ctx)
	if err != nil {
		return models.MovieDetails{}, err
	}
	if len(trending.Results) == 0 {
		return models.MovieDetails{}, ErrNoResults
	}

	limit := len(trending.Results)
	if limit > 5 {
		limit = 5
	}
	pick := trending.Results[rand.Intn(limit)]
	return s.MovieDetails(ctx, pick.ID)
}

func (s *Service) list(ctx context.Context, endpoint string, params url.Values) (models.MovieList, error) {
	keyParts := []string{"list", endpoint, s.tmdb.language}
	if params != nil {
		keyParts = append(keyParts, params.Encode())
	}
	key := cacheKey(keyParts...)

	var cached models.MovieList
	if s.cache.get(key, &cached) {
		return cached, nil
	}

	var payload models.MovieList
	if err := s.tmdb.get(ctx, endpoint, params, &payload); err != nil {
		return models.MovieList{}, err
	}

	_ = s.cache.set(key, payload)
	return payload, nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

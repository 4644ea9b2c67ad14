package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sourcegraph/conc/pool"

	"shadowflix/models"
	metadatapkg "shadowflix/services/metadata"
)

type metadataService interface {
	Trending(ctx context.Context) (models.MovieList, error)
	Popular(ctx context.Context) (models.MovieList, error)
	TopRated(ctx context.Context) (models.MovieList, error)
	NowPlaying(ctx context.Context) (models.MovieList, error)
	Upcoming(ctx context.Context) (models.MovieList, error)
	TVPopular(ctx context.Context) (models.MovieList, error)
	TVTopRated(ctx context.Context) (models.MovieList, error)
	Search(ctx context.Context, query string, page int) (models.MovieList, error)
	Genres(ctx context.Context) (models.GenreList, error)
	DiscoverByGenre(ctx context.Context, genreID int64, page int) (models.MovieList, error)
	MovieDetails(ctx context.Context, id int64) (models.MovieDetails, error)
	Featured(ctx context.Context) (models.MovieDetails, error)
}

var _ metadataService = (*metadatapkg.Service)(nil)

type MetadataHandler struct {
	Service metadataService
}

func NewMetadataHandler(service metadataService) *MetadataHandler {
	return &MetadataHandler{Service: service}
}

type listFetcher func(ctx context.Context) (models.MovieList, error)

func (h *MetadataHandler) listFetchers() map[string]listFetcher {
	return map[string]listFetcher{
		"trending":    h.Service.Trending,
		"popular":     h.Service.Popular,
		"top_rated":   h.Service.TopRated,
		"now_playing": h.Service.NowPlaying,
		"upcoming":    h.Service.Upcoming,
	}
}

func (h *MetadataHandler) tvFetchers() map[string]listFetcher {
	return map[string]listFetcher{
		"popular":   h.Service.TVPopular,
		"top_rated": h.Service.TVTopRated,
	}
}

// MovieList serves /api/movies/{list} for the fixed browse lists.
func (h *MetadataHandler) MovieList(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, h.listFetchers())
}

// TVList serves /api/tv/{list}.
func (h *MetadataHandler) TVList(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, h.tvFetchers())
}

func (h *MetadataHandler) serveList(w http.ResponseWriter, r *http.Request, fetchers map[string]listFetcher) {
	name := strings.ToLower(strings.TrimSpace(mux.Vars(r)["list"]))
	fetch, ok := fetchers[name]
	if !ok {
		http.Error(w, "unknown list", http.StatusNotFound)
		return
	}

	list, err := fetch(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Search serves title search with optional paging.
func (h *MetadataHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if parsed, err := strconv.Atoi(pageStr); err == nil && parsed > 0 {
			page = parsed
		}
	}

	list, err := h.Service.Search(r.Context(), query, page)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Genres serves the movie genre list.
func (h *MetadataHandler) Genres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.Service.Genres(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(genres)
}

// Discover serves genre-filtered discovery ordered by popularity.
func (h *MetadataHandler) Discover(w http.ResponseWriter, r *http.Request) {
	genreID, err := strconv.ParseInt(strings.TrimSpace(r.URL.Query().Get("genre")), 10, 64)
	if err != nil {
		http.Error(w, "invalid genre id", http.StatusBadRequest)
		return
	}

	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if parsed, err := strconv.Atoi(pageStr); err == nil && parsed > 0 {
			page = parsed
		}
	}

	list, err := h.Service.DiscoverByGenre(r.Context(), genreID, page)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Detail serves one title with videos and credits for the detail modal.
func (h *MetadataHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(strings.TrimSpace(mux.Vars(r)["id"]), 10, 64)
	if err != nil {
		http.Error(w, "invalid movie id", http.StatusBadRequest)
		return
	}

	details, err := h.Service.MovieDetails(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(details)
}

// Featured serves the landing page hero title.
func (h *MetadataHandler) Featured(w http.ResponseWriter, r *http.Request) {
	details, err := h.Service.Featured(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(details)
}

// browseRows fixes the order the browse page renders its shelves in.
var browseRows = []struct {
	id    string
	title string
}{
	{"trending", "Trending Now"},
	{"popular", "Popular on Shadowflix"},
	{"top_rated", "Top Rated"},
	{"now_playing", "Now Playing"},
	{"upcoming", "Coming Soon"},
	{"tv_popular", "Popular TV Shows"},
	{"tv_top_rated", "Top Rated TV"},
}

// BrowseHome assembles every browse row in one response. Rows are fetched
// concurrently; a row whose upstream fetch fails is omitted rather than
// failing the whole page.
func (h *MetadataHandler) BrowseHome(w http.ResponseWriter, r *http.Request) {
	fetchers := map[string]listFetcher{
		"trending":     h.Service.Trending,
		"popular":      h.Service.Popular,
		"top_rated":    h.Service.TopRated,
		"now_playing":  h.Service.NowPlaying,
		"upcoming":     h.Service.Upcoming,
		"tv_popular":   h.Service.TVPopular,
		"tv_top_rated": h.Service.TVTopRated,
	}

	results := make([]*models.BrowseRow, len(browseRows))

	p := pool.New().WithMaxGoroutines(4)
	for i, row := range browseRows {
		i, row := i, row // per-iteration copies; module now builds with a pre-1.22 go directive
		p.Go(func() {
			list, err := fetchers[row.id](r.Context())
			if err != nil {
				log.Printf("[metadata] browse row %s failed: %v", row.id, err)
				return
			}
			if len(list.Results) == 0 {
				return
			}
			movies := list.Results
			if len(movies) > 20 {
				movies = movies[:20]
			}
			results[i] = &models.BrowseRow{ID: row.id, Title: row.title, Movies: movies}
		})
	}
	p.Wait()

	rows := make([]models.BrowseRow, 0, len(results))
	for _, row := range results {
		if row != nil {
			rows = append(rows, *row)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"rows": rows})
}

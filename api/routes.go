package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"shadowflix/handlers"
)

// corsMiddleware handles CORS for API routes so the static pages can be
// served from anywhere during development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Register mounts API endpoints onto the provided router.
func Register(
	r *mux.Router,
	authHandler *handlers.AuthHandler,
	passwordsHandler *handlers.PasswordsHandler,
	watchlistHandler *handlers.WatchlistHandler,
	metadataHandler *handlers.MetadataHandler,
) {
	api := r.PathPrefix("/api").Subrouter()
	api.Use(corsMiddleware)

	// Auth
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)
	api.HandleFunc("/auth/session", authHandler.Session).Methods(http.MethodGet)
	api.HandleFunc("/auth/availability", authHandler.Availability).Methods(http.MethodGet)

	// Password policy
	api.HandleFunc("/password/validate", passwordsHandler.Validate).Methods(http.MethodPost)
	api.HandleFunc("/password/strength", passwordsHandler.Strength).Methods(http.MethodPost)
	api.HandleFunc("/password/suggest", passwordsHandler.Suggest).Methods(http.MethodGet)

	// Watchlist
	api.HandleFunc("/watchlist", watchlistHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/watchlist/toggle", watchlistHandler.Toggle).Methods(http.MethodPost)
	api.HandleFunc("/watchlist/contains/{id}", watchlistHandler.Contains).Methods(http.MethodGet)

	// Metadata
	api.HandleFunc("/browse/home", metadataHandler.BrowseHome).Methods(http.MethodGet)
	api.HandleFunc("/movies/featured", metadataHandler.Featured).Methods(http.MethodGet)
	api.HandleFunc("/movies/search", metadataHandler.Search).Methods(http.MethodGet)
	api.HandleFunc("/movies/discover", metadataHandler.Discover).Methods(http.MethodGet)
	api.HandleFunc("/movies/detail/{id}", metadataHandler.Detail).Methods(http.MethodGet)
	api.HandleFunc("/movies/{list}", metadataHandler.MovieList).Methods(http.MethodGet)
	api.HandleFunc("/tv/{list}", metadataHandler.TVList).Methods(http.MethodGet)
	api.HandleFunc("/genres", metadataHandler.Genres).Methods(http.MethodGet)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"shadowflix/models"
	"shadowflix/services/accounts"
)

type watchlistService interface {
	Watchlist() []models.WatchlistEntry
	ToggleWatchlist(entry models.WatchlistEntry) bool
	IsInWatchlist(movieID int64) bool
}

var _ watchlistService = (*accounts.Service)(nil)

type WatchlistHandler struct {
	Service watchlistService
}

func NewWatchlistHandler(service watchlistService) *WatchlistHandler {
	return &WatchlistHandler{Service: service}
}

// List returns the logged-in user's watchlist. Logged-out callers get an
// empty list, not an error; the page renders the same either way.
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Service.Watchlist())
}

// Toggle flips the entry's membership and reports whether it was added.
func (h *WatchlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var entry models.WatchlistEntry
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&entry); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if entry.ID == 0 {
		http.Error(w, "movie id is required", http.StatusBadRequest)
		return
	}

	added := h.Service.ToggleWatchlist(entry)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"added": added})
}

// Contains reports whether a movie id is on the watchlist.
func (h *WatchlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(strings.TrimSpace(vars["id"]), 10, 64)
	if err != nil {
		http.Error(w, "invalid movie id", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"inWatchlist": h.Service.IsInWatchlist(id)})
}

func (h *WatchlistHandler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

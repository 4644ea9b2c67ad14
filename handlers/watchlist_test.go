package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shadowflix/handlers"
	"shadowflix/models"
	"shadowflix/services/accounts"
)

func loggedInService(t *testing.T) *accounts.Service {
	t.Helper()
	svc := newAccountsService(t)
	_, err := svc.Register(accounts.RegisterInput{
		FirstName: "Dana", LastName: "Reyes",
		Email: "dana@example.com", Username: "dreyes", Password: "Passw0rd!",
	})
	require.NoError(t, err)
	_, err = svc.Login("dreyes", "Passw0rd!")
	require.NoError(t, err)
	return svc
}

func TestWatchlistToggleAndList(t *testing.T) {
	h := handlers.NewWatchlistHandler(loggedInService(t))

	entry := models.WatchlistEntry{ID: 42, Title: "Night Train", PosterPath: "/p.jpg", ReleaseDate: "2023"}
	payload, _ := json.Marshal(entry)
	req := httptest.NewRequest(http.MethodPost, "/api/watchlist/toggle", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Toggle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var toggleResp map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &toggleResp))
	assert.True(t, toggleResp["added"])

	reqList := httptest.NewRequest(http.MethodGet, "/api/watchlist", nil)
	recList := httptest.NewRecorder()
	h.List(recList, reqList)

	require.Equal(t, http.StatusOK, recList.Code)
	var entries []models.WatchlistEntry
	require.NoError(t, json.Unmarshal(recList.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, int64(42), entries[0].ID)

	// Second toggle removes.
	req = httptest.NewRequest(http.MethodPost, "/api/watchlist/toggle", bytes.NewReader(payload))
	rec = httptest.NewRecorder()
	h.Toggle(rec, req)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &toggleResp))
	assert.False(t, toggleResp["added"])
}

func TestWatchlistToggleRequiresMovieID(t *testing.T) {
	h := handlers.NewWatchlistHandler(loggedInService(t))

	req := httptest.NewRequest(http.MethodPost, "/api/watchlist/toggle", bytes.NewReader([]byte(`{"title":"No ID"}`)))
	rec := httptest.NewRecorder()
	h.Toggle(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWatchlistListLoggedOutIsEmptyNotError(t *testing.T) {
	h := handlers.NewWatchlistHandler(newAccountsService(t))

	req := httptest.NewRequest(http.MethodGet, "/api/watchlist", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestWatchlistContains(t *testing.T) {
	svc := loggedInService(t)
	svc.ToggleWatchlist(models.WatchlistEntry{ID: 7, Title: "Ghost"})

	h := handlers.NewWatchlistHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/watchlist/contains/7", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "7"})
	rec := httptest.NewRecorder()
	h.Contains(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp["inWatchlist"])

	req = httptest.NewRequest(http.MethodGet, "/api/watchlist/contains/nope", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "nope"})
	rec = httptest.NewRecorder()
	h.Contains(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

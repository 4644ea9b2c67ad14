package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"shadowflix/models"
	"shadowflix/services/accounts"
	"shadowflix/services/passwords"
)

type accountsService interface {
	Register(input accounts.RegisterInput) (models.User, error)
	Login(identifier, password string) (models.SessionUser, error)
	Logout()
	IsAuthenticated() bool
	Session() (models.SessionUser, bool)
	EmailRegistered(email string) bool
	UsernameTaken(username string) bool
}

var _ accountsService = (*accounts.Service)(nil)

type AuthHandler struct {
	Service accountsService
}

func NewAuthHandler(service accountsService) *AuthHandler {
	return &AuthHandler{Service: service}
}

// Register creates an account. The password is gated on the full policy
// first; the first failing rule's label is returned, mirroring the inline
// form feedback. On success the new user is logged in and returned redacted.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body accounts.RegisterInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if report := passwords.Validate(body.Password); !report.Valid {
		for _, result := range report.Results {
			if !result.Passed {
				http.Error(w, "Password: "+result.Label, http.StatusBadRequest)
				return
			}
		}
	}

	user, err := h.Service.Register(body)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, accounts.ErrDuplicateEmail), errors.Is(err, accounts.ErrDuplicateUsername):
			status = http.StatusConflict
		}
		http.Error(w, err.Error(), status)
		return
	}

	// Auto-login after registration, same as the original flow.
	session, err := h.Service.Login(user.Email, body.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(session)
}

// Login authenticates by email or username.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.Service.Login(strings.TrimSpace(body.Identifier), body.Password)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, accounts.ErrUserNotFound):
			status = http.StatusNotFound
		case errors.Is(err, accounts.ErrInvalidPassword):
			status = http.StatusUnauthorized
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(session)
}

// Logout clears the session; safe to call when logged out.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Service.Logout()
	w.WriteHeader(http.StatusNoContent)
}

// Session returns the active session or 401.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	session, ok := h.Service.Session()
	if !ok {
		http.Error(w, "not signed in", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(session)
}

// Availability powers the registration form's inline "already taken"
// checks for email and username.
func (h *AuthHandler) Availability(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	username := strings.TrimSpace(r.URL.Query().Get("username"))

	resp := struct {
		EmailRegistered bool `json:"emailRegistered"`
		UsernameTaken   bool `json:"usernameTaken"`
	}{}
	if email != "" {
		resp.EmailRegistered = h.Service.EmailRegistered(email)
	}
	if username != "" {
		resp.UsernameTaken = h.Service.UsernameTaken(username)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *AuthHandler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

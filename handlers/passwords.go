package handlers

import (
	"encoding/json"
	"net/http"

	"shadowflix/services/passwords"
)

// PasswordsHandler exposes the policy engine for the registration form's
// per-keystroke checklist and strength meter.
type PasswordsHandler struct{}

func NewPasswordsHandler() *PasswordsHandler {
	return &PasswordsHandler{}
}

func (h *PasswordsHandler) decodePassword(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body struct {
		Password string `json:"password"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return body.Password, true
}

// Validate returns the per-rule report for a candidate password.
func (h *PasswordsHandler) Validate(w http.ResponseWriter, r *http.Request) {
	pw, ok := h.decodePassword(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(passwords.Validate(pw))
}

// Strength returns the aggregate score, label and color for the meter.
func (h *PasswordsHandler) Strength(w http.ResponseWriter, r *http.Request) {
	pw, ok := h.decodePassword(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(passwords.Rate(pw))
}

// Suggest returns a generated password that passes every rule.
func (h *PasswordsHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	pw, err := passwords.Suggest()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"password": pw})
}

func (h *PasswordsHandler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

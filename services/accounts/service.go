package accounts

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"shadowflix/internal/storage"
	"shadowflix/models"
)

// passwordSalt is the fixed application-wide salt the original credential
// store shipped with. Changing it would invalidate every stored hash, so it
// stays as-is even though a per-user salt would be stronger.
const passwordSalt = "shadowflix_salt_2024"

const usersKey = "users"

var (
	ErrStoreRequired     = errors.New("store not provided")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrUserNotFound      = errors.New("no account found with that email or username")
	ErrInvalidPassword   = errors.New("incorrect password")
)

// Service owns the durable user collection, the single in-memory session,
// and each user's watchlist. Every mutating call reads the whole persisted
// collection, modifies it and rewrites it before returning; the mutex
// serializes callers against that read-modify-write cycle.
type Service struct {
	mu      sync.Mutex
	store   *storage.Store
	session *models.SessionUser
}

// NewService creates an accounts service over the provided store.
func NewService(store *storage.Store) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	return &Service{store: store}, nil
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	DOB       string `json:"dob"`
	Gender    string `json:"gender"`
	Phone     string `json:"phone"`
}

// Register creates a new user record. The email check runs before the
// username check, so a request that collides on both reports the email
// conflict. The returned record still carries the password hash; callers
// must redact it before showing it anywhere.
func (s *Service) Register(input RegisterInput) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.loadUsers()

	for _, u := range users {
		if strings.EqualFold(u.Email, input.Email) {
			return models.User{}, ErrDuplicateEmail
		}
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, input.Username) {
			return models.User{}, ErrDuplicateUsername
		}
	}

	user := models.User{
		ID:           uuid.NewString(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hashPassword(input.Password),
		DOB:          input.DOB,
		Gender:       input.Gender,
		Phone:        input.Phone,
		Avatar:       defaultAvatar(input.FirstName, input.LastName),
		CreatedAt:    time.Now().UTC(),
		Watchlist:    []models.WatchlistEntry{},
	}

	users = append(users, user)
	if err := s.store.Save(usersKey, users); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Login authenticates by email or username (case-insensitive) and installs
// the redacted record as the active session.
func (s *Service) Login(identifier, password string) (models.SessionUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.loadUsers()

	var found *models.User
	for i := range users {
		if strings.EqualFold(users[i].Email, identifier) || strings.EqualFold(users[i].Username, identifier) {
			found = &users[i]
			break
		}
	}
	if found == nil {
		return models.SessionUser{}, ErrUserNotFound
	}

	if hashPassword(password) != found.PasswordHash {
		return models.SessionUser{}, ErrInvalidPassword
	}

	session := found.Redacted()
	s.session = &session
	return session, nil
}

// Logout clears the active session. Calling it with no session is a no-op.
func (s *Service) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
}

// IsAuthenticated reports whether a session is active.
func (s *Service) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil
}

// Session returns a copy of the active session, if any.
func (s *Service) Session() (models.SessionUser, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return models.SessionUser{}, false
	}
	return *s.session, true
}

// Watchlist returns the logged-in user's watchlist. No session, or a
// session whose user id no longer resolves, yields an empty list rather
// than an error; the pages treat both the same as "logged out".
func (s *Service) Watchlist() []models.WatchlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, _, ok := s.sessionUserLocked(s.loadUsers())
	if !ok {
		return []models.WatchlistEntry{}
	}

	entries := make([]models.WatchlistEntry, len(user.Watchlist))
	copy(entries, user.Watchlist)
	return entries
}

// ToggleWatchlist adds the entry if absent and removes it if present,
// matching on entry id. It reports true when the entry was added. Without a
// resolvable session it reports false and leaves the stored collection
// untouched.
func (s *Service) ToggleWatchlist(entry models.WatchlistEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.loadUsers()
	user, idx, ok := s.sessionUserLocked(users)
	if !ok {
		return false
	}

	added := true
	for i, existing := range user.Watchlist {
		if existing.ID == entry.ID {
			user.Watchlist = append(user.Watchlist[:i], user.Watchlist[i+1:]...)
			added = false
			break
		}
	}
	if added {
		user.Watchlist = append(user.Watchlist, entry)
	}

	users[idx] = user
	if err := s.store.Save(usersKey, users); err != nil {
		return false
	}
	return added
}

// IsInWatchlist reports whether the logged-in user has saved the given
// movie id.
func (s *Service) IsInWatchlist(movieID int64) bool {
	for _, entry := range s.Watchlist() {
		if entry.ID == movieID {
			return true
		}
	}
	return false
}

// EmailRegistered reports whether any account uses the email,
// case-insensitively. The registration page uses this for inline feedback.
func (s *Service) EmailRegistered(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.loadUsers() {
		if strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

// UsernameTaken reports whether any account uses the username,
// case-insensitively.
func (s *Service) UsernameTaken(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.loadUsers() {
		if strings.EqualFold(u.Username, username) {
			return true
		}
	}
	return false
}

// loadUsers reads the persisted collection. Missing or corrupt state
// degrades to an empty collection so the UI stays usable.
func (s *Service) loadUsers() []models.User {
	var users []models.User
	if !s.store.Load(usersKey, &users) {
		return []models.User{}
	}
	return users
}

func (s *Service) sessionUserLocked(users []models.User) (models.User, int, bool) {
	if s.session == nil {
		return models.User{}, 0, false
	}
	for i, u := range users {
		if u.ID == s.session.ID {
			return u, i, true
		}
	}
	return models.User{}, 0, false
}

// hashPassword is a plain salted digest, identical for identical inputs.
// It obfuscates the stored value but is not a credential-grade scheme (no
// per-user salt, no KDF); stored-data compatibility keeps it frozen.
func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password + passwordSalt))
	return hex.EncodeToString(sum[:])
}

func defaultAvatar(firstName, lastName string) string {
	q := url.Values{}
	q.Set("name", strings.TrimSpace(firstName+" "+lastName))
	q.Set("background", "e50914")
	q.Set("color", "fff")
	q.Set("size", "128")
	return "https://ui-avatars.com/api/?" + q.Encode()
}

package models

import "time"

// User models a registered shadowflix account. The password hash is kept
// under the legacy "password" key so existing stored collections keep
// loading unchanged.
type User struct {
	ID           string           `json:"id"`
	FirstName    string           `json:"firstName"`
	LastName     string           `json:"lastName"`
	Email        string           `json:"email"`
	Username     string           `json:"username"`
	PasswordHash string           `json:"password"`
	DOB          string           `json:"dob,omitempty"`
	Gender       string           `json:"gender,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	Avatar       string           `json:"avatar"`
	CreatedAt    time.Time        `json:"createdAt"`
	Watchlist    []WatchlistEntry `json:"watchlist"`
}

// SessionUser is the redacted copy of a User held for the lifetime of the
// active session. It has no password hash field at all, so a session can
// never leak the credential through serialization.
type SessionUser struct {
	ID        string           `json:"id"`
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	Email     string           `json:"email"`
	Username  string           `json:"username"`
	DOB       string           `json:"dob,omitempty"`
	Gender    string           `json:"gender,omitempty"`
	Phone     string           `json:"phone,omitempty"`
	Avatar    string           `json:"avatar"`
	CreatedAt time.Time        `json:"createdAt"`
	Watchlist []WatchlistEntry `json:"watchlist"`
}

// Redacted clones the user without the password hash.
func (u User) Redacted() SessionUser {
	watchlist := make([]WatchlistEntry, len(u.Watchlist))
	copy(watchlist, u.Watchlist)
	return SessionUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Username:  u.Username,
		DOB:       u.DOB,
		Gender:    u.Gender,
		Phone:     u.Phone,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
		Watchlist: watchlist,
	}
}

// WatchlistEntry is a denormalized snapshot of a title at the moment it was
// saved. Field names mirror the TMDB payload the browse page works with.
type WatchlistEntry struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	PosterPath  string `json:"poster_path"`
	ReleaseDate string `json:"release_date"`
}

package models

// Movie is a single title as returned by TMDB list endpoints. The backend
// treats these payloads as mostly opaque; only the fields the pages actually
// render are decoded.
type Movie struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	Overview     string  `json:"overview,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	VoteAverage  float64 `json:"vote_average,omitempty"`
	VoteCount    int64   `json:"vote_count,omitempty"`
	Popularity   float64 `json:"popularity,omitempty"`
	GenreIDs     []int64 `json:"genre_ids,omitempty"`
}

// DisplayTitle returns the movie title, falling back to the TV series name.
func (m Movie) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	return m.Name
}

// MovieList is a paged TMDB list response.
type MovieList struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int64   `json:"total_results"`
}

// Genre is a TMDB genre record.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GenreList wraps the TMDB genre list response.
type GenreList struct {
	Genres []Genre `json:"genres"`
}

// Video is a trailer or clip attached to a title.
type Video struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Key      string `json:"key"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// CastMember is one credited actor on a title.
type CastMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path,omitempty"`
	Order       int    `json:"order"`
}

// MovieDetails is the single-title payload with videos and credits appended.
type MovieDetails struct {
	Movie
	Tagline string  `json:"tagline,omitempty"`
	Runtime int     `json:"runtime,omitempty"`
	Genres  []Genre `json:"genres,omitempty"`
	Videos  struct {
		Results []Video `json:"results"`
	} `json:"videos"`
	Credits struct {
		Cast []CastMember `json:"cast"`
	} `json:"credits"`
}

// BrowseRow is one shelf of titles on the browse page.
type BrowseRow struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Movies []Movie `json:"movies"`
}

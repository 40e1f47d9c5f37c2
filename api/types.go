package api

import "time"

// MonetizationType classifies how a title is paid for
type MonetizationType string

// Monetization types
const (
	MonetizationVIP  MonetizationType = "vip"
	MonetizationFree MonetizationType = "free"
)

// Movie is a catalog entry as returned by list endpoints
type Movie struct {
	ID               int64            `json:"id"`
	Title            string           `json:"title"`
	CoverURL         string           `json:"coverUrl"`
	Genre            string           `json:"genre"`
	Region           string           `json:"region"`
	ReleaseYear      int              `json:"releaseYear"`
	PublishedAt      time.Time        `json:"publishedAt"`
	MonetizationType MonetizationType `json:"monetizationType"`
	Tags             []string         `json:"tags"`
	Rating           float64          `json:"rating"`
}

// IsVIP reports whether the title requires an active membership
func (m Movie) IsVIP() bool {
	return m.MonetizationType == MonetizationVIP
}

// MoviesPage is one page of a movie listing
type MoviesPage struct {
	Items []Movie `json:"items"`
}

// MovieDetail is the full record for a single title
type MovieDetail struct {
	Movie
	Description string   `json:"description"`
	Director    string   `json:"director"`
	Actors      []string `json:"actors"`
	Duration    int      `json:"duration"` // minutes
	PlayCount   int64    `json:"playCount"`
}

// PlayData is the playback manifest for a single title
type PlayData struct {
	PlayURL   string `json:"playUrl"`
	Format    string `json:"format"`
	ExpiresIn int    `json:"expiresIn"` // seconds
}

// Banner is a rotating promotional entry on the landing page
type Banner struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
	MovieID  int64  `json:"movieId"`
}

// CategoryType distinguishes the two kinds of category
type CategoryType string

// Category types
const (
	CategoryGenre  CategoryType = "genre"
	CategoryRegion CategoryType = "region"
)

// Category is a browseable catalog dimension (genre or region)
type Category struct {
	ID   int64        `json:"id"`
	Name string       `json:"name"`
	Type CategoryType `json:"type"`
}

// Tag is a free-form catalog label
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// HistoryEntry is one watch-history record
type HistoryEntry struct {
	Movie     Movie     `json:"movie"`
	WatchedAt time.Time `json:"watchedAt"`
	Progress  float64   `json:"progress"` // 0..1 of runtime
}

// HistoryPage is one page of the watch history listing
type HistoryPage struct {
	Items []HistoryEntry `json:"items"`
}

// Post is a single feed entry
type Post struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Images    []string  `json:"images"`
	VideoURL  string    `json:"videoUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostsPage is a cursor-delimited slice of the feed
type PostsPage struct {
	Items          []Post `json:"items"`
	LastSeenID     int64  `json:"lastSeenId"`
	HasMoreHistory bool   `json:"hasMoreHistory"`
	HasMoreNew     bool   `json:"hasMoreNew"`
}

// Plan is a purchasable membership plan
type Plan struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	DurationDays int     `json:"durationDays"`
	Description  string  `json:"description"`
}

// Credentials are the login request body
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the successful login payload
type LoginResponse struct {
	Token        string    `json:"token"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	VIPStatus    string    `json:"vipStatus"`
	VIPExpiresAt time.Time `json:"vipExpiresAt"`
}

// RegistrationSettings control how the register flow behaves
type RegistrationSettings struct {
	EnableEmailVerification bool `json:"enableEmailVerification"`
	NewUserVIPDays          int  `json:"newUserVipDays"`
}

// RegistrationDetails are the register request body
type RegistrationDetails struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	VerificationCode string `json:"verificationCode,omitempty"`
}

// MessageResponse is a bare acknowledgement with a displayable message
type MessageResponse struct {
	Message string `json:"message"`
}

// VerificationResponse acknowledges a verification-code request
type VerificationResponse struct {
	Message          string `json:"message"`
	VerificationCode string `json:"verificationCode,omitempty"`
}

package profile

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/clapperhq/clapper/session"
)

// ErrLoginRequired is returned by Toggle when the user is anonymous. The
// store has already signalled a redirect to the login page by then.
var ErrLoginRequired = errors.New("login required")

// FavoritesAPI is the slice of the gateway the favorite set needs.
type FavoritesAPI interface {
	GetFavoriteIDs(ctx context.Context) ([]int64, error)
	AddFavorite(ctx context.Context, movieID int64) error
	RemoveFavorite(ctx context.Context, movieID int64) error
}

// Session is the authentication check Toggle performs before mutating.
type Session interface {
	IsAuthenticated() bool
}

// Favorites maintains the set of favorited movie IDs. Toggles apply locally
// before the server confirms and are rolled back when the call fails, so
// membership is eventually consistent with the server.
type Favorites struct {
	api     FavoritesAPI
	session Session
	nav     session.Navigator
	lists   *Lists
	logger  zerolog.Logger

	mu  sync.Mutex
	ids map[int64]struct{}
}

// NewFavorites creates the favorite set. lists may be nil; when present, a
// successful toggle refetches the favorites listing if one is loaded.
func NewFavorites(apiClient FavoritesAPI, sess Session, nav session.Navigator, lists *Lists, logger zerolog.Logger) *Favorites {
	return &Favorites{
		api:     apiClient,
		session: sess,
		nav:     nav,
		lists:   lists,
		logger:  logger,
		ids:     make(map[int64]struct{}),
	}
}

// IsFavorited reports membership.
func (f *Favorites) IsFavorited(movieID int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.ids[movieID]
	return ok
}

// IDs returns the current member IDs in no particular order.
func (f *Favorites) IDs() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int64, 0, len(f.ids))
	for id := range f.ids {
		out = append(out, id)
	}
	return out
}

// Len returns the number of favorited movies.
func (f *Favorites) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ids)
}

// Toggle flips membership for the movie. Anonymous users are redirected to
// login carrying currentPath and nothing is mutated. Otherwise membership
// flips immediately and flips back if the server call fails.
func (f *Favorites) Toggle(ctx context.Context, movieID int64, currentPath string) error {
	if !f.session.IsAuthenticated() {
		if f.nav != nil {
			f.nav.Redirect(session.LoginRedirect(currentPath))
		}
		return ErrLoginRequired
	}

	f.mu.Lock()
	_, wasFavorited := f.ids[movieID]
	if wasFavorited {
		delete(f.ids, movieID)
	} else {
		f.ids[movieID] = struct{}{}
	}
	f.mu.Unlock()

	var err error
	if wasFavorited {
		err = f.api.RemoveFavorite(ctx, movieID)
	} else {
		err = f.api.AddFavorite(ctx, movieID)
	}

	if err != nil {
		// Compensating rollback to the pre-toggle membership.
		f.mu.Lock()
		if wasFavorited {
			f.ids[movieID] = struct{}{}
		} else {
			delete(f.ids, movieID)
		}
		f.mu.Unlock()
		f.logger.Warn().Err(err).Int64("movie_id", movieID).Msg("Favorite toggle failed, rolled back")
		return err
	}

	// Keep a loaded favorites listing consistent with server ordering.
	if f.lists != nil && f.lists.Favorites.Len() > 0 {
		go func() {
			_ = f.lists.Favorites.LoadFirst(context.Background())
		}()
	}

	return nil
}

// Prime replaces the whole set with the server's list. Failure clears the
// set rather than leaving stale membership behind.
func (f *Favorites) Prime(ctx context.Context) error {
	ids, err := f.api.GetFavoriteIDs(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.ids = make(map[int64]struct{})
		f.logger.Warn().Err(err).Msg("Failed to fetch favorite IDs")
		return err
	}
	f.ids = make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		f.ids[id] = struct{}{}
	}
	return nil
}

// Clear empties the set; used on logout.
func (f *Favorites) Clear() {
	f.mu.Lock()
	f.ids = make(map[int64]struct{})
	f.mu.Unlock()
}

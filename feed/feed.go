// Package feed implements the cursor-paginated feed store: the initial
// window loads around the user's last seen post, older posts prepend via a
// before_id cursor and newer posts append via an after_id cursor.
package feed

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/clapperhq/clapper/api"
)

// API is the slice of the gateway the feed store needs.
type API interface {
	GetPosts(ctx context.Context) (*api.PostsPage, error)
	GetPostsBefore(ctx context.Context, beforeID int64) (*api.PostsPage, error)
	GetPostsAfter(ctx context.Context, afterID int64) (*api.PostsPage, error)
	UpdateFeedProgress(ctx context.Context, lastPostID int64) error
}

// Store holds the ordered post sequence, oldest first.
type Store struct {
	api    API
	logger zerolog.Logger

	mu             sync.Mutex
	posts          []api.Post
	lastSeenID     int64
	hasMoreHistory bool
	hasMoreNew     bool
	loading        bool
	loadingHistory bool
	loadingNew     bool
	lastErr        error
	gen            uint64
}

// NewStore creates a feed store.
func NewStore(apiClient API, logger zerolog.Logger) *Store {
	return &Store{
		api:            apiClient,
		logger:         logger,
		hasMoreHistory: true,
	}
}

// LoadInitial replaces the feed with the window around the last seen post.
func (s *Store) LoadInitial(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.loading = true
	s.lastErr = nil
	s.mu.Unlock()

	page, err := s.api.GetPosts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return nil
	}
	s.loading = false
	if err != nil {
		s.lastErr = err
		s.logger.Debug().Err(err).Msg("Failed to load feed")
		return err
	}
	s.posts = page.Items
	s.lastSeenID = page.LastSeenID
	s.hasMoreHistory = page.HasMoreHistory
	s.hasMoreNew = page.HasMoreNew
	return nil
}

// LoadHistory prepends older posts, keyed off the current oldest post. A
// no-op while another history load is in flight, when no history remains,
// or when the feed is empty.
func (s *Store) LoadHistory(ctx context.Context) error {
	s.mu.Lock()
	if !s.hasMoreHistory || s.loadingHistory || len(s.posts) == 0 {
		s.mu.Unlock()
		return nil
	}
	s.loadingHistory = true
	oldestID := s.posts[0].ID
	gen := s.gen
	s.mu.Unlock()

	page, err := s.api.GetPostsBefore(ctx, oldestID)

	s.mu.Lock()
	defer s.mu.Unlock()
	// Release the in-flight flag even when superseded, or the next history
	// load would be a permanent no-op.
	s.loadingHistory = false
	if gen != s.gen {
		return nil
	}
	if err != nil {
		s.lastErr = err
		s.logger.Debug().Err(err).Int64("before_id", oldestID).Msg("Failed to load feed history")
		return err
	}
	s.posts = append(append([]api.Post{}, page.Items...), s.posts...)
	s.hasMoreHistory = page.HasMoreHistory
	return nil
}

// LoadNew appends newer posts, keyed off the current newest post. Guards
// mirror LoadHistory.
func (s *Store) LoadNew(ctx context.Context) error {
	s.mu.Lock()
	if !s.hasMoreNew || s.loadingNew || len(s.posts) == 0 {
		s.mu.Unlock()
		return nil
	}
	s.loadingNew = true
	newestID := s.posts[len(s.posts)-1].ID
	gen := s.gen
	s.mu.Unlock()

	page, err := s.api.GetPostsAfter(ctx, newestID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadingNew = false
	if gen != s.gen {
		return nil
	}
	if err != nil {
		s.lastErr = err
		s.logger.Debug().Err(err).Int64("after_id", newestID).Msg("Failed to load new feed posts")
		return err
	}
	s.posts = append(s.posts, page.Items...)
	s.hasMoreNew = page.HasMoreNew
	return nil
}

// UpdateProgress records the newest post the user has seen. Failures are
// logged and swallowed; losing a progress write is harmless.
func (s *Store) UpdateProgress(ctx context.Context, postID int64) {
	if err := s.api.UpdateFeedProgress(ctx, postID); err != nil {
		s.logger.Warn().Err(err).Int64("post_id", postID).Msg("Failed to update feed progress")
		return
	}
	s.mu.Lock()
	s.lastSeenID = postID
	s.mu.Unlock()
}

// Reset returns the store to its initial state; used on logout.
func (s *Store) Reset() {
	s.mu.Lock()
	s.gen++
	s.posts = nil
	s.lastSeenID = 0
	s.hasMoreHistory = true
	s.hasMoreNew = false
	s.loading = false
	s.loadingHistory = false
	s.loadingNew = false
	s.lastErr = nil
	s.mu.Unlock()
}

// Posts returns a copy of the ordered post sequence, oldest first.
func (s *Store) Posts() []api.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// LastSeenID returns the user's recorded read position.
func (s *Store) LastSeenID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeenID
}

// HasMoreHistory reports whether older posts remain.
func (s *Store) HasMoreHistory() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMoreHistory
}

// HasMoreNew reports whether newer posts remain.
func (s *Store) HasMoreNew() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMoreNew
}

// Loading reports whether the initial load is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the most recent load error, if any.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

package catalog

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/clapperhq/clapper/api"
)

// Playback aggregates everything the player page needs for one title:
// detail, the play manifest, and related titles, fetched concurrently. The
// view-model is all-or-nothing: any failure leaves every field unset.
type Playback struct {
	api    API
	logger zerolog.Logger

	mu      sync.Mutex
	movieID int64
	detail  *api.MovieDetail
	play    *api.PlayData
	related []api.Movie
	loading bool
	lastErr error
	gen     uint64
}

// NewPlayback creates the playback aggregator.
func NewPlayback(apiClient API, logger zerolog.Logger) *Playback {
	return &Playback{api: apiClient, logger: logger}
}

// Load clears the previous view-model and fetches all three pieces for the
// title concurrently. A later Load supersedes an in-flight one; the stale
// result is discarded.
func (p *Playback) Load(ctx context.Context, movieID int64) error {
	p.mu.Lock()
	p.gen++
	gen := p.gen
	p.movieID = movieID
	p.detail = nil
	p.play = nil
	p.related = nil
	p.loading = true
	p.lastErr = nil
	p.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)

	var detail *api.MovieDetail
	var play *api.PlayData
	var related []api.Movie

	g.Go(func() error {
		var err error
		detail, err = p.api.GetMovieDetail(ctx, movieID)
		return err
	})
	g.Go(func() error {
		var err error
		play, err = p.api.GetPlayData(ctx, movieID)
		return err
	})
	g.Go(func() error {
		var err error
		related, err = p.api.GetRelatedMovies(ctx, movieID)
		return err
	})

	err := g.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		p.logger.Debug().Int64("movie_id", movieID).Msg("Discarding superseded playback load")
		return nil
	}
	p.loading = false
	if err != nil {
		p.lastErr = err
		p.logger.Warn().Err(err).Int64("movie_id", movieID).Msg("Failed to load playback data")
		return err
	}
	p.detail = detail
	p.play = play
	p.related = related
	return nil
}

// MovieID returns the title the current view-model belongs to.
func (p *Playback) MovieID() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.movieID
}

// Detail returns the loaded title detail, or nil.
func (p *Playback) Detail() *api.MovieDetail {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.detail
}

// PlayData returns the loaded play manifest, or nil.
func (p *Playback) PlayData() *api.PlayData {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.play
}

// Related returns the loaded related titles.
func (p *Playback) Related() []api.Movie {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]api.Movie, len(p.related))
	copy(out, p.related)
	return out
}

// Loading reports whether a load is in flight.
func (p *Playback) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Err returns the most recent load error, if any.
func (p *Playback) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

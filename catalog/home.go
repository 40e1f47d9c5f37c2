package catalog

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/clapperhq/clapper/api"
	"github.com/clapperhq/clapper/pager"
)

// Section keys
const (
	SectionLatest  = "latest"
	SectionPopular = "popular"
	SectionVIP     = "vip"
	SectionFree    = "free"
)

// Section is one fixed landing-page shelf with its own pagination cursor.
type Section struct {
	Key   string
	Title string
	List  *pager.List[api.Movie]
}

// Home is the landing-page store: the banner rotation plus four sections.
type Home struct {
	api    API
	logger zerolog.Logger

	mu      sync.Mutex
	banners []api.Banner
	loading bool
	lastErr error
	gen     uint64

	sections []*Section
}

// NewHome creates the landing-page store.
func NewHome(apiClient API, pageSize int, logger zerolog.Logger) *Home {
	if pageSize <= 0 {
		pageSize = HomePageSize
	}

	h := &Home{api: apiClient, logger: logger}

	add := func(key, title string, base api.MovieQuery) {
		list := pager.NewList(pageSize, func(ctx context.Context, pageIndex, size int) ([]api.Movie, error) {
			query := base
			query.PageIndex = pageIndex
			query.PageSize = size
			return apiClient.ListMovies(ctx, query)
		}, logger.With().Str("section", key).Logger())
		h.sections = append(h.sections, &Section{Key: key, Title: title, List: list})
	}

	add(SectionLatest, "Latest Releases", api.MovieQuery{SortBy: "published_at"})
	add(SectionPopular, "Popular Picks", api.MovieQuery{SortBy: "release_year"})
	add(SectionVIP, "Members Only", api.MovieQuery{MonetizationType: api.MonetizationVIP})
	add(SectionFree, "Free Zone", api.MovieQuery{MonetizationType: api.MonetizationFree})

	return h
}

// Sections returns the fixed landing-page sections in display order.
func (h *Home) Sections() []*Section {
	return h.sections
}

// Section returns the section with the given key, or nil.
func (h *Home) Section(key string) *Section {
	for _, s := range h.sections {
		if s.Key == key {
			return s
		}
	}
	return nil
}

// Load fetches the banners and every section's first page concurrently.
// All requests must succeed; the first failure is recorded and cancels the
// rest.
func (h *Home) Load(ctx context.Context) error {
	h.mu.Lock()
	h.gen++
	gen := h.gen
	h.loading = true
	h.lastErr = nil
	h.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)

	var banners []api.Banner
	g.Go(func() error {
		var err error
		banners, err = h.api.GetBanners(ctx)
		return err
	})

	for _, section := range h.sections {
		g.Go(func() error {
			return section.List.LoadFirst(ctx)
		})
	}

	err := g.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	if gen != h.gen {
		return nil
	}
	h.loading = false
	if err != nil {
		h.lastErr = err
		h.logger.Warn().Err(err).Msg("Failed to load home page data")
		return err
	}
	h.banners = banners
	return nil
}

// Banners returns the loaded banner rotation.
func (h *Home) Banners() []api.Banner {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]api.Banner, len(h.banners))
	copy(out, h.banners)
	return out
}

// Loading reports whether a full home load is in flight.
func (h *Home) Loading() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loading
}

// Err returns the most recent load error, if any.
func (h *Home) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastErr
}

// Reset returns every section and the banner rotation to the unloaded state.
func (h *Home) Reset() {
	h.mu.Lock()
	h.gen++
	h.banners = nil
	h.loading = false
	h.lastErr = nil
	h.mu.Unlock()
	for _, section := range h.sections {
		section.List.Reset()
	}
}

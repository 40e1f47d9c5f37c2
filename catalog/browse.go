package catalog

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/clapperhq/clapper/api"
	"github.com/clapperhq/clapper/pager"
)

// Filters are the active category-page criteria. FilterAny on a dimension
// means the dimension is not constrained.
type Filters struct {
	Genre        string
	Region       string
	Tag          string
	SortBy       string
	Monetization api.MonetizationType
}

// DefaultFilters returns the unconstrained criteria.
func DefaultFilters() Filters {
	return Filters{
		Genre:  FilterAny,
		Region: FilterAny,
		Tag:    FilterAny,
		SortBy: DefaultSort,
	}
}

// Browse is the filterable category listing. Changing any criterion always
// refetches from page 1; there is no partial refetch.
type Browse struct {
	api    API
	logger zerolog.Logger

	List *pager.List[api.Movie]

	mu         sync.Mutex
	filters    Filters
	categories []api.Category
	tags       []api.Tag
	metaLoaded bool
}

// NewBrowse creates the category-page store.
func NewBrowse(apiClient API, pageSize int, logger zerolog.Logger) *Browse {
	if pageSize <= 0 {
		pageSize = CategoryPageSize
	}

	b := &Browse{
		api:     apiClient,
		logger:  logger,
		filters: DefaultFilters(),
	}
	b.List = pager.NewList(pageSize, func(ctx context.Context, pageIndex, size int) ([]api.Movie, error) {
		query := b.query()
		query.PageIndex = pageIndex
		query.PageSize = size
		return apiClient.ListMovies(ctx, query)
	}, logger)
	return b
}

// query translates the active filters into list-endpoint parameters,
// omitting unconstrained dimensions.
func (b *Browse) query() api.MovieQuery {
	b.mu.Lock()
	defer b.mu.Unlock()

	query := api.MovieQuery{
		SortBy:           b.filters.SortBy,
		MonetizationType: b.filters.Monetization,
	}
	if b.filters.Genre != FilterAny {
		query.Genre = b.filters.Genre
	}
	if b.filters.Region != FilterAny {
		query.Region = b.filters.Region
	}
	if b.filters.Tag != FilterAny {
		query.Tag = b.filters.Tag
	}
	return query
}

// Filters returns the active criteria.
func (b *Browse) Filters() Filters {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filters
}

// SetGenre updates the genre criterion and refetches from page 1.
func (b *Browse) SetGenre(ctx context.Context, genre string) error {
	return b.setFilter(ctx, func(f *Filters) bool {
		if f.Genre == genre {
			return false
		}
		f.Genre = genre
		return true
	})
}

// SetRegion updates the region criterion and refetches from page 1.
func (b *Browse) SetRegion(ctx context.Context, region string) error {
	return b.setFilter(ctx, func(f *Filters) bool {
		if f.Region == region {
			return false
		}
		f.Region = region
		return true
	})
}

// SetTag updates the tag criterion and refetches from page 1.
func (b *Browse) SetTag(ctx context.Context, tag string) error {
	return b.setFilter(ctx, func(f *Filters) bool {
		if f.Tag == tag {
			return false
		}
		f.Tag = tag
		return true
	})
}

// SetSortBy updates the sort key and refetches from page 1.
func (b *Browse) SetSortBy(ctx context.Context, sortBy string) error {
	return b.setFilter(ctx, func(f *Filters) bool {
		if f.SortBy == sortBy {
			return false
		}
		f.SortBy = sortBy
		return true
	})
}

// SetMonetization constrains the listing to one monetization class and
// resets every other criterion, then refetches from page 1.
func (b *Browse) SetMonetization(ctx context.Context, class api.MonetizationType) error {
	b.mu.Lock()
	b.filters = DefaultFilters()
	b.filters.Monetization = class
	b.mu.Unlock()
	return b.List.LoadFirst(ctx)
}

func (b *Browse) setFilter(ctx context.Context, mutate func(*Filters) bool) error {
	b.mu.Lock()
	changed := mutate(&b.filters)
	b.mu.Unlock()
	if !changed {
		return nil
	}
	return b.List.LoadFirst(ctx)
}

// LoadMeta fetches the categories and tags once; later calls are no-ops.
func (b *Browse) LoadMeta(ctx context.Context) error {
	b.mu.Lock()
	if b.metaLoaded {
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)

	var categories []api.Category
	var tags []api.Tag
	g.Go(func() error {
		var err error
		categories, err = b.api.GetCategories(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		tags, err = b.api.GetTags(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		b.logger.Warn().Err(err).Msg("Failed to load categories and tags")
		return err
	}

	b.mu.Lock()
	b.categories = categories
	b.tags = tags
	b.metaLoaded = true
	b.mu.Unlock()
	return nil
}

// Genres returns the selectable genre names, FilterAny first.
func (b *Browse) Genres() []string {
	return b.categoryNames(api.CategoryGenre)
}

// Regions returns the selectable region names, FilterAny first.
func (b *Browse) Regions() []string {
	return b.categoryNames(api.CategoryRegion)
}

// Tags returns the selectable tag names, FilterAny first.
func (b *Browse) Tags() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []string{FilterAny}
	for _, t := range b.tags {
		out = append(out, t.Name)
	}
	return out
}

func (b *Browse) categoryNames(kind api.CategoryType) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []string{FilterAny}
	for _, c := range b.categories {
		if c.Type == kind {
			out = append(out, c.Name)
		}
	}
	return out
}

// Reset clears the listing and restores the default criteria; used on logout.
func (b *Browse) Reset() {
	b.mu.Lock()
	b.filters = DefaultFilters()
	b.mu.Unlock()
	b.List.Reset()
}

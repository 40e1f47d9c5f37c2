package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clapperhq/clapper/api"
)

type fakeCatalogAPI struct {
	mu      sync.Mutex
	queries []api.MovieQuery

	movies    func(query api.MovieQuery) ([]api.Movie, error)
	banners   []api.Banner
	bannerErr error

	categories []api.Category
	tags       []api.Tag
	metaCalls  int

	detail     *api.MovieDetail
	detailErr  error
	play       *api.PlayData
	playErr    error
	related    []api.Movie
	relatedErr error
}

func (f *fakeCatalogAPI) ListMovies(ctx context.Context, query api.MovieQuery) ([]api.Movie, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	if f.movies != nil {
		return f.movies(query)
	}
	return nil, nil
}

func (f *fakeCatalogAPI) listCalls() []api.MovieQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.MovieQuery{}, f.queries...)
}

func (f *fakeCatalogAPI) GetBanners(ctx context.Context) ([]api.Banner, error) {
	return f.banners, f.bannerErr
}

func (f *fakeCatalogAPI) GetCategories(ctx context.Context) ([]api.Category, error) {
	f.mu.Lock()
	f.metaCalls++
	f.mu.Unlock()
	return f.categories, nil
}

func (f *fakeCatalogAPI) GetTags(ctx context.Context) ([]api.Tag, error) {
	return f.tags, nil
}

func (f *fakeCatalogAPI) GetMovieDetail(ctx context.Context, id int64) (*api.MovieDetail, error) {
	return f.detail, f.detailErr
}

func (f *fakeCatalogAPI) GetPlayData(ctx context.Context, id int64) (*api.PlayData, error) {
	return f.play, f.playErr
}

func (f *fakeCatalogAPI) GetRelatedMovies(ctx context.Context, id int64) ([]api.Movie, error) {
	return f.related, f.relatedErr
}

func movies(n int) []api.Movie {
	out := make([]api.Movie, n)
	for i := range out {
		out[i] = api.Movie{ID: int64(i + 1), Title: fmt.Sprintf("Movie %d", i+1)}
	}
	return out
}

func TestHomeLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("loads banners and all sections", func(t *testing.T) {
		fake := &fakeCatalogAPI{
			banners: []api.Banner{{ID: 1, Title: "Featured"}},
			movies: func(query api.MovieQuery) ([]api.Movie, error) {
				return movies(HomePageSize), nil
			},
		}
		home := NewHome(fake, HomePageSize, zerolog.Nop())
		require.NoError(t, home.Load(ctx))

		assert.Len(t, home.Banners(), 1)
		require.Len(t, home.Sections(), 4)
		for _, section := range home.Sections() {
			assert.Equal(t, HomePageSize, section.List.Len(), section.Key)
			assert.True(t, section.List.HasMore(), section.Key)
		}
		assert.False(t, home.Loading())
	})

	t.Run("section queries carry their params", func(t *testing.T) {
		fake := &fakeCatalogAPI{}
		home := NewHome(fake, HomePageSize, zerolog.Nop())
		require.NoError(t, home.Load(ctx))

		bySort := map[string]bool{}
		byClass := map[api.MonetizationType]bool{}
		for _, q := range fake.listCalls() {
			assert.Equal(t, 1, q.PageIndex)
			assert.Equal(t, HomePageSize, q.PageSize)
			bySort[q.SortBy] = true
			byClass[q.MonetizationType] = true
		}
		assert.True(t, bySort["published_at"])
		assert.True(t, bySort["release_year"])
		assert.True(t, byClass[api.MonetizationVIP])
		assert.True(t, byClass[api.MonetizationFree])
	})

	t.Run("banner failure records error", func(t *testing.T) {
		fake := &fakeCatalogAPI{bannerErr: errors.New("boom")}
		home := NewHome(fake, HomePageSize, zerolog.Nop())
		require.Error(t, home.Load(ctx))
		assert.Error(t, home.Err())
		assert.Empty(t, home.Banners())
	})
}

func TestBrowseFilters(t *testing.T) {
	ctx := context.Background()

	t.Run("filter change refetches from page one", func(t *testing.T) {
		fake := &fakeCatalogAPI{movies: func(q api.MovieQuery) ([]api.Movie, error) {
			return movies(CategoryPageSize), nil
		}}
		browse := NewBrowse(fake, CategoryPageSize, zerolog.Nop())
		require.NoError(t, browse.List.LoadFirst(ctx))
		require.NoError(t, browse.List.LoadMore(ctx))
		require.Equal(t, 2, browse.List.Page())

		require.NoError(t, browse.SetGenre(ctx, "Action"))
		assert.Equal(t, 1, browse.List.Page())
		assert.Equal(t, CategoryPageSize, browse.List.Len(), "items replaced wholesale")

		last := fake.listCalls()[len(fake.listCalls())-1]
		assert.Equal(t, "Action", last.Genre)
		assert.Equal(t, 1, last.PageIndex)
	})

	t.Run("unchanged filter is a no-op", func(t *testing.T) {
		fake := &fakeCatalogAPI{}
		browse := NewBrowse(fake, CategoryPageSize, zerolog.Nop())
		require.NoError(t, browse.SetGenre(ctx, "Action"))
		calls := len(fake.listCalls())
		require.NoError(t, browse.SetGenre(ctx, "Action"))
		assert.Equal(t, calls, len(fake.listCalls()))
	})

	t.Run("any-valued dimensions are omitted from the query", func(t *testing.T) {
		fake := &fakeCatalogAPI{}
		browse := NewBrowse(fake, CategoryPageSize, zerolog.Nop())
		require.NoError(t, browse.List.LoadFirst(ctx))

		q := fake.listCalls()[0]
		assert.Empty(t, q.Genre)
		assert.Empty(t, q.Region)
		assert.Empty(t, q.Tag)
		assert.Equal(t, DefaultSort, q.SortBy)
	})

	t.Run("monetization resets the other criteria", func(t *testing.T) {
		fake := &fakeCatalogAPI{}
		browse := NewBrowse(fake, CategoryPageSize, zerolog.Nop())
		require.NoError(t, browse.SetGenre(ctx, "Action"))
		require.NoError(t, browse.SetSortBy(ctx, "release_year"))

		require.NoError(t, browse.SetMonetization(ctx, api.MonetizationVIP))
		filters := browse.Filters()
		assert.Equal(t, FilterAny, filters.Genre)
		assert.Equal(t, FilterAny, filters.Region)
		assert.Equal(t, FilterAny, filters.Tag)
		assert.Equal(t, DefaultSort, filters.SortBy)
		assert.Equal(t, api.MonetizationVIP, filters.Monetization)

		last := fake.listCalls()[len(fake.listCalls())-1]
		assert.Equal(t, api.MonetizationVIP, last.MonetizationType)
		assert.Empty(t, last.Genre)
	})
}

func TestBrowseMeta(t *testing.T) {
	ctx := context.Background()
	fake := &fakeCatalogAPI{
		categories: []api.Category{
			{Name: "Action", Type: api.CategoryGenre},
			{Name: "Drama", Type: api.CategoryGenre},
			{Name: "Japan", Type: api.CategoryRegion},
		},
		tags: []api.Tag{{Name: "New"}},
	}
	browse := NewBrowse(fake, CategoryPageSize, zerolog.Nop())

	require.NoError(t, browse.LoadMeta(ctx))
	assert.Equal(t, []string{FilterAny, "Action", "Drama"}, browse.Genres())
	assert.Equal(t, []string{FilterAny, "Japan"}, browse.Regions())
	assert.Equal(t, []string{FilterAny, "New"}, browse.Tags())

	// Cached: a second call never refetches.
	require.NoError(t, browse.LoadMeta(ctx))
	assert.Equal(t, 1, fake.metaCalls)
}

func TestPlayback(t *testing.T) {
	ctx := context.Background()

	detail := &api.MovieDetail{Movie: api.Movie{ID: 5, Title: "The Load-Bearing Wall"}}
	play := &api.PlayData{PlayURL: "https://cdn.example.com/5.m3u8"}
	related := movies(3)

	t.Run("all three succeed", func(t *testing.T) {
		fake := &fakeCatalogAPI{detail: detail, play: play, related: related}
		pb := NewPlayback(fake, zerolog.Nop())
		require.NoError(t, pb.Load(ctx, 5))

		assert.Equal(t, detail, pb.Detail())
		assert.Equal(t, play, pb.PlayData())
		assert.Len(t, pb.Related(), 3)
		assert.False(t, pb.Loading())
		assert.NoError(t, pb.Err())
	})

	t.Run("one failure leaves everything unset", func(t *testing.T) {
		fake := &fakeCatalogAPI{detail: detail, play: play, relatedErr: errors.New("boom")}
		pb := NewPlayback(fake, zerolog.Nop())
		require.Error(t, pb.Load(ctx, 5))

		assert.Nil(t, pb.Detail())
		assert.Nil(t, pb.PlayData())
		assert.Empty(t, pb.Related())
		assert.Error(t, pb.Err())
	})

	t.Run("new load clears the previous view-model first", func(t *testing.T) {
		fake := &fakeCatalogAPI{detail: detail, play: play, related: related}
		pb := NewPlayback(fake, zerolog.Nop())
		require.NoError(t, pb.Load(ctx, 5))

		fake.playErr = &api.APIError{StatusCode: 401, Message: "VIP required"}
		require.Error(t, pb.Load(ctx, 6))

		assert.Nil(t, pb.Detail(), "previous detail must not survive")
		assert.Nil(t, pb.PlayData())
		assert.Empty(t, pb.Related())
		assert.Equal(t, int64(6), pb.MovieID())
	})
}

// Package catalog holds the browsing stores: the landing page's banner
// rotation and fixed sections, the filterable category listing, and the
// playback aggregator.
package catalog

import (
	"context"

	"github.com/clapperhq/clapper/api"
)

// Page sizes and filter defaults
const (
	HomePageSize     = 6
	CategoryPageSize = 18

	// FilterAny matches everything; the query parameter is omitted.
	FilterAny = "all"

	DefaultSort = "published_at"
)

// API is the slice of the gateway the catalog stores need.
type API interface {
	ListMovies(ctx context.Context, query api.MovieQuery) ([]api.Movie, error)
	GetBanners(ctx context.Context) ([]api.Banner, error)
	GetCategories(ctx context.Context) ([]api.Category, error)
	GetTags(ctx context.Context) ([]api.Tag, error)
	GetMovieDetail(ctx context.Context, id int64) (*api.MovieDetail, error)
	GetPlayData(ctx context.Context, id int64) (*api.PlayData, error)
	GetRelatedMovies(ctx context.Context, id int64) ([]api.Movie, error)
}

// Package profile holds the signed-in user's stores: the optimistic
// favorite set and the paginated history and favorites listings.
package profile

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/clapperhq/clapper/api"
	"github.com/clapperhq/clapper/pager"
)

// DefaultPageSize is the page size for both profile listings.
const DefaultPageSize = 12

// ListsAPI is the slice of the gateway the listing stores need.
type ListsAPI interface {
	ListHistory(ctx context.Context, pageIndex, pageSize int) ([]api.HistoryEntry, error)
	ListFavorites(ctx context.Context, pageIndex, pageSize int) ([]api.Movie, error)
}

// Lists bundles the watch-history and favorites listings.
type Lists struct {
	History   *pager.List[api.HistoryEntry]
	Favorites *pager.List[api.Movie]
}

// NewLists creates the two profile listings.
func NewLists(apiClient ListsAPI, pageSize int, logger zerolog.Logger) *Lists {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Lists{
		History: pager.NewList(pageSize, func(ctx context.Context, pageIndex, size int) ([]api.HistoryEntry, error) {
			return apiClient.ListHistory(ctx, pageIndex, size)
		}, logger.With().Str("list", "history").Logger()),
		Favorites: pager.NewList(pageSize, func(ctx context.Context, pageIndex, size int) ([]api.Movie, error) {
			return apiClient.ListFavorites(ctx, pageIndex, size)
		}, logger.With().Str("list", "favorites").Logger()),
	}
}

// Reset returns both listings to their initial state; used on logout.
func (l *Lists) Reset() {
	l.History.Reset()
	l.Favorites.Reset()
}

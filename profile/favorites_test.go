package profile

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clapperhq/clapper/api"
)

type fakeFavoritesAPI struct {
	ids    []int64
	idsErr error

	addErr    error
	removeErr error

	addCalls    atomic.Int32
	removeCalls atomic.Int32

	favoritesPages chan []api.Movie
}

func (f *fakeFavoritesAPI) GetFavoriteIDs(ctx context.Context) ([]int64, error) {
	return f.ids, f.idsErr
}

func (f *fakeFavoritesAPI) AddFavorite(ctx context.Context, movieID int64) error {
	f.addCalls.Add(1)
	return f.addErr
}

func (f *fakeFavoritesAPI) RemoveFavorite(ctx context.Context, movieID int64) error {
	f.removeCalls.Add(1)
	return f.removeErr
}

func (f *fakeFavoritesAPI) ListFavorites(ctx context.Context, pageIndex, pageSize int) ([]api.Movie, error) {
	if f.favoritesPages != nil {
		return <-f.favoritesPages, nil
	}
	return nil, nil
}

func (f *fakeFavoritesAPI) ListHistory(ctx context.Context, pageIndex, pageSize int) ([]api.HistoryEntry, error) {
	return nil, nil
}

type fakeSession struct{ authenticated bool }

func (s *fakeSession) IsAuthenticated() bool { return s.authenticated }

type fakeNav struct{ redirects []string }

func (n *fakeNav) Redirect(path string) { n.redirects = append(n.redirects, path) }

func TestToggle(t *testing.T) {
	ctx := context.Background()

	t.Run("adds then removes", func(t *testing.T) {
		fake := &fakeFavoritesAPI{}
		favs := NewFavorites(fake, &fakeSession{authenticated: true}, nil, nil, zerolog.Nop())

		require.NoError(t, favs.Toggle(ctx, 7, ""))
		assert.True(t, favs.IsFavorited(7))
		assert.Equal(t, int32(1), fake.addCalls.Load())

		require.NoError(t, favs.Toggle(ctx, 7, ""))
		assert.False(t, favs.IsFavorited(7))
		assert.Equal(t, int32(1), fake.removeCalls.Load())
	})

	t.Run("failed add rolls back", func(t *testing.T) {
		fake := &fakeFavoritesAPI{addErr: errors.New("boom")}
		favs := NewFavorites(fake, &fakeSession{authenticated: true}, nil, nil, zerolog.Nop())

		before := favs.IsFavorited(7)
		err := favs.Toggle(ctx, 7, "")
		require.Error(t, err)
		assert.Equal(t, before, favs.IsFavorited(7))
	})

	t.Run("failed remove rolls back", func(t *testing.T) {
		fake := &fakeFavoritesAPI{ids: []int64{7}, removeErr: errors.New("boom")}
		favs := NewFavorites(fake, &fakeSession{authenticated: true}, nil, nil, zerolog.Nop())
		require.NoError(t, favs.Prime(ctx))
		require.True(t, favs.IsFavorited(7))

		err := favs.Toggle(ctx, 7, "")
		require.Error(t, err)
		assert.True(t, favs.IsFavorited(7), "membership must equal its pre-toggle value")
	})

	t.Run("anonymous redirects and never calls the network", func(t *testing.T) {
		fake := &fakeFavoritesAPI{}
		nav := &fakeNav{}
		favs := NewFavorites(fake, &fakeSession{authenticated: false}, nav, nil, zerolog.Nop())

		err := favs.Toggle(ctx, 7, "/movies/7")
		require.ErrorIs(t, err, ErrLoginRequired)

		assert.False(t, favs.IsFavorited(7))
		assert.Zero(t, fake.addCalls.Load())
		assert.Zero(t, fake.removeCalls.Load())
		require.Len(t, nav.redirects, 1)
		assert.Equal(t, "/login?redirect=%2Fmovies%2F7", nav.redirects[0])
	})

	t.Run("success refetches a loaded favorites listing", func(t *testing.T) {
		fake := &fakeFavoritesAPI{favoritesPages: make(chan []api.Movie, 2)}
		fake.favoritesPages <- []api.Movie{{ID: 1}, {ID: 2}}

		lists := NewLists(fake, 12, zerolog.Nop())
		require.NoError(t, lists.Favorites.LoadFirst(ctx))
		require.Equal(t, 2, lists.Favorites.Len())

		favs := NewFavorites(fake, &fakeSession{authenticated: true}, nil, lists, zerolog.Nop())
		fake.favoritesPages <- []api.Movie{{ID: 1}, {ID: 2}, {ID: 9}}
		require.NoError(t, favs.Toggle(ctx, 9, ""))

		require.Eventually(t, func() bool {
			return lists.Favorites.Len() == 3
		}, time.Second, 10*time.Millisecond, "favorites listing was not refetched")
	})

	t.Run("no refetch when listing never loaded", func(t *testing.T) {
		fake := &fakeFavoritesAPI{}
		lists := NewLists(fake, 12, zerolog.Nop())
		favs := NewFavorites(fake, &fakeSession{authenticated: true}, nil, lists, zerolog.Nop())

		require.NoError(t, favs.Toggle(ctx, 9, ""))
		assert.Zero(t, lists.Favorites.Len())
	})
}

func TestPrime(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the set", func(t *testing.T) {
		fake := &fakeFavoritesAPI{ids: []int64{1, 2, 3}}
		favs := NewFavorites(fake, &fakeSession{authenticated: true}, nil, nil, zerolog.Nop())
		require.NoError(t, favs.Toggle(ctx, 99, ""))

		require.NoError(t, favs.Prime(ctx))
		assert.Equal(t, 3, favs.Len())
		assert.True(t, favs.IsFavorited(2))
		assert.False(t, favs.IsFavorited(99), "prime replaces, never merges")
	})

	t.Run("failure clears instead of keeping stale data", func(t *testing.T) {
		fake := &fakeFavoritesAPI{ids: []int64{1, 2}}
		favs := NewFavorites(fake, &fakeSession{authenticated: true}, nil, nil, zerolog.Nop())
		require.NoError(t, favs.Prime(ctx))
		require.Equal(t, 2, favs.Len())

		fake.idsErr = errors.New("boom")
		require.Error(t, favs.Prime(ctx))
		assert.Zero(t, favs.Len())
	})
}

func TestClear(t *testing.T) {
	fake := &fakeFavoritesAPI{ids: []int64{1}}
	favs := NewFavorites(fake, &fakeSession{authenticated: true}, nil, nil, zerolog.Nop())
	require.NoError(t, favs.Prime(context.Background()))

	favs.Clear()
	assert.Zero(t, favs.Len())
}

func TestListsReset(t *testing.T) {
	ctx := context.Background()
	fake := &fakeFavoritesAPI{favoritesPages: make(chan []api.Movie, 1)}
	fake.favoritesPages <- []api.Movie{{ID: 1}}

	lists := NewLists(fake, 12, zerolog.Nop())
	require.NoError(t, lists.Favorites.LoadFirst(ctx))
	require.NoError(t, lists.History.LoadFirst(ctx))

	lists.Reset()
	assert.Zero(t, lists.Favorites.Len())
	assert.Zero(t, lists.History.Len())
	assert.True(t, lists.Favorites.HasMore())
}

package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

func pageValues(pageIndex, pageSize int) url.Values {
	params := url.Values{}
	params.Set("pageIndex", strconv.Itoa(pageIndex))
	params.Set("pageSize", strconv.Itoa(pageSize))
	return params
}

// GetFavoriteIDs fetches the complete set of favorited movie IDs
func (c *Client) GetFavoriteIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := c.get(ctx, "/profile/favorites/ids", nil, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// AddFavorite marks a movie as favorited
func (c *Client) AddFavorite(ctx context.Context, movieID int64) error {
	return c.post(ctx, fmt.Sprintf("/profile/favorites/%d", movieID), nil, nil)
}

// RemoveFavorite unmarks a favorited movie
func (c *Client) RemoveFavorite(ctx context.Context, movieID int64) error {
	return c.del(ctx, fmt.Sprintf("/profile/favorites/%d", movieID))
}

// ListFavorites fetches one page of the favorites listing
func (c *Client) ListFavorites(ctx context.Context, pageIndex, pageSize int) ([]Movie, error) {
	var resp MoviesPage
	if err := c.get(ctx, "/profile/favorites", pageValues(pageIndex, pageSize), &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// ListHistory fetches one page of the watch history
func (c *Client) ListHistory(ctx context.Context, pageIndex, pageSize int) ([]HistoryEntry, error) {
	var resp HistoryPage
	if err := c.get(ctx, "/profile/history", pageValues(pageIndex, pageSize), &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

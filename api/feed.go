package api

import (
	"context"
	"net/url"
	"strconv"
)

// GetPosts fetches the most recent window of the feed around the user's
// last seen position.
func (c *Client) GetPosts(ctx context.Context) (*PostsPage, error) {
	var resp PostsPage
	if err := c.get(ctx, "/gossip/posts", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetPostsBefore fetches older posts, ending just before the given id
func (c *Client) GetPostsBefore(ctx context.Context, beforeID int64) (*PostsPage, error) {
	params := url.Values{}
	params.Set("before_id", strconv.FormatInt(beforeID, 10))
	var resp PostsPage
	if err := c.get(ctx, "/gossip/posts", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetPostsAfter fetches newer posts, starting just after the given id
func (c *Client) GetPostsAfter(ctx context.Context, afterID int64) (*PostsPage, error) {
	params := url.Values{}
	params.Set("after_id", strconv.FormatInt(afterID, 10))
	var resp PostsPage
	if err := c.get(ctx, "/gossip/posts", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateFeedProgress records the newest post the user has seen
func (c *Client) UpdateFeedProgress(ctx context.Context, lastPostID int64) error {
	payload := map[string]int64{"lastPostId": lastPostID}
	return c.post(ctx, "/gossip/progress", payload, nil)
}

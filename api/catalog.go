package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// MovieQuery are the list-endpoint parameters. Zero-valued fields are
// omitted from the request.
type MovieQuery struct {
	SortBy           string
	Genre            string
	Region           string
	Tag              string
	MonetizationType MonetizationType
	PageIndex        int
	PageSize         int
}

func (q MovieQuery) values() url.Values {
	params := url.Values{}
	if q.SortBy != "" {
		params.Set("sortBy", q.SortBy)
	}
	if q.Genre != "" {
		params.Set("genre", q.Genre)
	}
	if q.Region != "" {
		params.Set("region", q.Region)
	}
	if q.Tag != "" {
		params.Set("tag", q.Tag)
	}
	if q.MonetizationType != "" {
		params.Set("monetizationType", string(q.MonetizationType))
	}
	if q.PageIndex > 0 {
		params.Set("pageIndex", strconv.Itoa(q.PageIndex))
	}
	if q.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	return params
}

// ListMovies fetches one page of the catalog
func (c *Client) ListMovies(ctx context.Context, query MovieQuery) ([]Movie, error) {
	var resp MoviesPage
	if err := c.get(ctx, "/movies", query.values(), &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GetBanners fetches the landing-page banner rotation
func (c *Client) GetBanners(ctx context.Context) ([]Banner, error) {
	var banners []Banner
	if err := c.get(ctx, "/banners", nil, &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

// GetCategories fetches all genre and region categories
func (c *Client) GetCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.get(ctx, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetTags fetches all catalog tags
func (c *Client) GetTags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	if err := c.get(ctx, "/tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// GetMovieDetail fetches the full record for one title
func (c *Client) GetMovieDetail(ctx context.Context, id int64) (*MovieDetail, error) {
	var detail MovieDetail
	if err := c.get(ctx, fmt.Sprintf("/movies/%d", id), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetPlayData fetches the playback manifest for one title. A 401 here means
// the title is gated, not that the session is dead, so it is exempt from
// the automatic teardown.
func (c *Client) GetPlayData(ctx context.Context, id int64) (*PlayData, error) {
	var play PlayData
	if err := c.get(ctx, fmt.Sprintf("/movies/%d/play", id), nil, &play); err != nil {
		return nil, err
	}
	return &play, nil
}

// GetRelatedMovies fetches titles related to the given one
func (c *Client) GetRelatedMovies(ctx context.Context, id int64) ([]Movie, error) {
	var related []Movie
	if err := c.get(ctx, fmt.Sprintf("/movies/%d/related", id), nil, &related); err != nil {
		return nil, err
	}
	return related, nil
}

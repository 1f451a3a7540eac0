// Package deezer is the client for the public metadata service: artist and
// album browsing, charts and search. Track previews come from the playback
// service instead, see core/playback.
package deezer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"groovefm/logger"
)

// Client talks to the metadata API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a metadata API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
	}
}

// get issues a GET against the API and decodes the JSON body into out.
// No retries; the caller decides what an error means.
func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	reqURL := c.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create metadata request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("metadata request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("metadata API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode metadata response: %w", err)
	}
	return nil
}

// ChartArtists returns the current popular artists.
func (c *Client) ChartArtists(ctx context.Context, limit int) ([]Artist, error) {
	var result struct {
		Data []Artist `json:"data"`
	}
	endpoint := fmt.Sprintf("/chart/0/artists?limit=%d", limit)
	if err := c.get(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	logger.Debug("chart artists fetched", logger.Int("count", len(result.Data)))
	return result.Data, nil
}

// ChartAlbums returns the current popular albums.
func (c *Client) ChartAlbums(ctx context.Context, limit int) ([]Album, error) {
	var result struct {
		Data []Album `json:"data"`
	}
	endpoint := fmt.Sprintf("/chart/0/albums?limit=%d", limit)
	if err := c.get(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	logger.Debug("chart albums fetched", logger.Int("count", len(result.Data)))
	return result.Data, nil
}

// SearchArtists searches artists by name.
func (c *Client) SearchArtists(ctx context.Context, query string, limit int) ([]Artist, error) {
	var result struct {
		Data []Artist `json:"data"`
	}
	endpoint := fmt.Sprintf("/search/artist?q=%s&limit=%d", url.QueryEscape(query), limit)
	if err := c.get(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// SearchAlbums searches albums by title.
func (c *Client) SearchAlbums(ctx context.Context, query string, limit int) ([]Album, error) {
	var result struct {
		Data []Album `json:"data"`
	}
	endpoint := fmt.Sprintf("/search/album?q=%s&limit=%d", url.QueryEscape(query), limit)
	if err := c.get(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// Artist looks up one artist by ID.
func (c *Client) Artist(ctx context.Context, artistID string) (*Artist, error) {
	var artist Artist
	if err := c.get(ctx, "/artist/"+url.PathEscape(artistID), &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// Album looks up one album by ID.
func (c *Client) Album(ctx context.Context, albumID string) (*Album, error) {
	var album Album
	if err := c.get(ctx, "/album/"+url.PathEscape(albumID), &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// ArtistTopTracks returns an artist's top tracks as listed by the
// metadata service.
func (c *Client) ArtistTopTracks(ctx context.Context, artistID string, limit int) ([]Track, error) {
	var result struct {
		Data []Track `json:"data"`
	}
	endpoint := fmt.Sprintf("/artist/%s/top?limit=%d", url.PathEscape(artistID), limit)
	if err := c.get(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// AlbumTracks returns an album's track listing.
func (c *Client) AlbumTracks(ctx context.Context, albumID string, limit int) ([]Track, error) {
	var result struct {
		Data []Track `json:"data"`
	}
	endpoint := fmt.Sprintf("/album/%s/tracks?limit=%d", url.PathEscape(albumID), limit)
	if err := c.get(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// ArtistAlbums returns an artist's albums.
func (c *Client) ArtistAlbums(ctx context.Context, artistID string, limit int) ([]Album, error) {
	var result struct {
		Data []Album `json:"data"`
	}
	endpoint := fmt.Sprintf("/artist/%s/albums?limit=%d", url.PathEscape(artistID), limit)
	if err := c.get(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

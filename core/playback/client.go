// Package playback is the client for the track service: the only source of
// track objects with playable preview URLs. It lives behind an API gateway,
// so every request carries the gateway host/key headers.
package playback

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"groovefm/logger"
)

// Client talks to the track playback-metadata API.
type Client struct {
	baseURL    string
	host       string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a playback API client for the given gateway host.
func NewClient(host, apiKey string) *Client {
	return &Client{
		baseURL: "https://" + host,
		host:    host,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
	}
}

// SetBaseURL overrides the gateway URL. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("create playback request: %w", err)
	}
	req.Header.Set("x-rapidapi-host", c.host)
	req.Header.Set("x-rapidapi-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("playback request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("playback API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode playback response: %w", err)
	}
	return nil
}

// SearchTracks searches tracks by free text.
func (c *Client) SearchTracks(ctx context.Context, query string, limit int) ([]Track, error) {
	var result struct {
		Data []Track `json:"data"`
	}
	endpoint := fmt.Sprintf("/search?q=%s&limit=%d", url.QueryEscape(query), limit)
	if err := c.get(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	logger.Debug("track search done",
		logger.String("query", query),
		logger.Int("count", len(result.Data)))
	return result.Data, nil
}

// Track looks up one track by ID.
func (c *Client) Track(ctx context.Context, trackID string) (*Track, error) {
	var track Track
	if err := c.get(ctx, "/track/"+url.PathEscape(trackID), &track); err != nil {
		return nil, err
	}
	return &track, nil
}

// StreamURL returns the preview URL for a track, or "" when the track has
// no usable preview. A missing preview is not an error: the track is simply
// unplayable.
func (c *Client) StreamURL(ctx context.Context, trackID string) (string, error) {
	track, err := c.Track(ctx, trackID)
	if err != nil {
		return "", err
	}
	if track.Preview == nil {
		return "", nil
	}
	if !strings.HasPrefix(*track.Preview, "https://") {
		logger.Warn("preview URL has unexpected format",
			logger.String("trackId", trackID))
		return "", nil
	}
	return *track.Preview, nil
}
